package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

func request(query string) registry.Request {
	return registry.Request{
		Node:   model.Node{ID: "db", Type: model.TypeDatabase, Config: map[string]string{"query": query}},
		Inputs: map[string]any{"params": []any{42}},
	}
}

func TestNoRunnerInstalled(t *testing.T) {
	SetRunner(nil)
	_, err := OnRunDatabase(context.Background(), request("SELECT 1"))
	assert.ErrorContains(t, err, "no query runner installed")
}

func TestRunnerReceivesQueryAndParams(t *testing.T) {
	var gotQuery string
	var gotParams any
	SetRunner(func(ctx context.Context, query string, params any) ([]map[string]any, error) {
		gotQuery = query
		gotParams = params
		return []map[string]any{{"n": 1}}, nil
	})
	t.Cleanup(func() { SetRunner(nil) })

	out, err := OnRunDatabase(context.Background(), request("SELECT n FROM t WHERE id = ?"))
	require.NoError(t, err)

	assert.Equal(t, "SELECT n FROM t WHERE id = ?", gotQuery)
	assert.Equal(t, []any{42}, gotParams)
	assert.Equal(t, []map[string]any{{"n": 1}}, out["rows"])
}

func TestRunnerErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	SetRunner(func(ctx context.Context, query string, params any) ([]map[string]any, error) {
		return nil, boom
	})
	t.Cleanup(func() { SetRunner(nil) })

	_, err := OnRunDatabase(context.Background(), request("SELECT 1"))
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, `database node "db"`)
}
