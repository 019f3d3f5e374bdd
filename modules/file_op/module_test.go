package file_op

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

func run(t *testing.T, operation, path string, inputs map[string]any) (map[string]any, error) {
	t.Helper()
	return OnRunFileOp(context.Background(), registry.Request{
		Node: model.Node{
			ID:     "f",
			Type:   model.TypeFileOp,
			Config: map[string]string{"operation": operation, "path": path},
		},
		Inputs: inputs,
	})
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	out, err := run(t, "write", path, map[string]any{"content": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", out["content"])
	assert.Equal(t, path, out["path"])

	out, err = run(t, "read", path, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", out["content"])
}

func TestAppendCreatesAndExtends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	_, err := run(t, "append", path, map[string]any{"content": "one\n"})
	require.NoError(t, err)
	_, err = run(t, "append", path, map[string]any{"content": "two\n"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := run(t, "delete", path, nil)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestErrors(t *testing.T) {
	t.Run("read missing file", func(t *testing.T) {
		_, err := run(t, "read", filepath.Join(t.TempDir(), "nope.txt"), nil)
		assert.ErrorContains(t, err, "reading")
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, err := run(t, "truncate", "x", nil)
		assert.ErrorContains(t, err, "unknown operation")
	})
}
