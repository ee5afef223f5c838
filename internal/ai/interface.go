package ai

import (
	"context"
)

// Provider defines the contract for interacting with hosted chat models.
// Implementations are safe for concurrent use; every call is an independent conversation.
type Provider interface {
	// Generate sends prompt as the next user turn after history and returns the
	// model's raw text reply. Transport, auth and quota failures are returned as errors.
	Generate(ctx context.Context, prompt string, history []Message, cfg GenerationConfig) (string, error)
}
