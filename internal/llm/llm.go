// Package llm abstracts the language model backends the chat pipeline can
// run against. Every provider answers a single prompt with a single
// completion; streaming is not part of the contract.
package llm

import "context"

// GenerateRequest is a provider-independent completion request.
type GenerateRequest struct {
	Prompt      string
	Temperature float32
}

// GenerateResponse carries the completion and the model that produced it.
type GenerateResponse struct {
	Model    string
	Response string
}

// Provider defines the interface for interacting with a language model.
type Provider interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Ping verifies the backend is reachable and the credentials work. It is
	// called at startup and again on every reinitialization.
	Ping(ctx context.Context) error
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}
