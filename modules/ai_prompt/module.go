// Package ai_prompt sends the configured prompt, prefixed with any
// upstream "context" port value, to an OpenAI-compatible chat completion
// endpoint and returns the response text.
package ai_prompt

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/skyops/flowgrid/internal/ctxlog"
	"github.com/skyops/flowgrid/internal/model"
	"github.com/skyops/flowgrid/internal/registry"
)

const defaultModel = openai.GPT4oMini

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(model.TypeAIPrompt, OnRunAIPrompt)
}

// newClient builds the OpenAI client from the environment. OPENAI_BASE_URL
// overrides the endpoint so tests and local inference servers can stand in.
func newClient() (*openai.Client, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	cfg := openai.DefaultConfig(key)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	return openai.NewClientWithConfig(cfg), nil
}

// OnRunAIPrompt is the handler for ai_prompt nodes.
func OnRunAIPrompt(ctx context.Context, req registry.Request) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx).With("handler", "ai_prompt", "nodeID", req.Node.ID)

	client, err := newClient()
	if err != nil {
		return nil, fmt.Errorf("ai_prompt node %q: %w", req.Node.ID, err)
	}

	chatModel := req.Node.Config["model"]
	if chatModel == "" {
		chatModel = defaultModel
	}

	messages := []openai.ChatCompletionMessage{}
	if extra, ok := req.Inputs["context"].(string); ok && extra != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: extra,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Node.Config["prompt"],
	})

	logger.Debug("Requesting completion.", "model", chatModel)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    chatModel,
		Messages: messages,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return map[string]any{"response": resp.Choices[0].Message.Content}, nil
}
