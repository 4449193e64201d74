package llm

import (
	"context"
)

// Client is the provider-neutral LLM invocation contract. Implementations
// live in the provider subpackages; everything above them depends only on
// this interface, which also keeps tests free of real API calls.
type Client interface {
	Invoke(ctx context.Context, request Request) (*Response, error)
	InvokeWithRetry(ctx context.Context, request Request) (*Response, error)
}
