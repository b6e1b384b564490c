package provider

import (
	"context"
	"errors"
	"time"

	openai_provider "github.com/proposalarchitect/speakerscout/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI Client = "openai"
	Azure  Client = "azure"
)

// Provider is the interface every LLM implementation must satisfy.
//
// Complete is intentionally model-agnostic: only a system instruction and a
// user message, no sampling parameters, so the same call works against any
// chat deployment.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Options carries the provider wiring pulled from configuration.
type Options struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

// NewProvider creates an LLM client for the configured backend. A missing
// API key is a configuration failure the process cannot recover from, so it
// surfaces here and aborts startup.
func NewProvider(client Client, opts Options) (Provider, error) {
	if opts.APIKey == "" {
		return nil, errors.New("llm api key not set")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	switch client {
	case OpenAI, Azure:
		return openai_provider.NewOpenAIClient(
			opts.APIKey,
			opts.BaseURL,
			opts.ChatModel,
			opts.EmbeddingModel,
			opts.Timeout,
		), nil
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
