package domain

import "context"

// CompletionClient turns a prompt into the model's free-text reply.
// Implementations return a *DomainError with CodeUpstreamUnavailable on failure.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
