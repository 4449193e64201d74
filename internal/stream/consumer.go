// Package stream feeds discussion requests from a message broker into the
// forum coordinator.
package stream

import "context"

// Consumer pulls discussion requests off a broker and runs them to
// completion. Setup prepares broker-side state such as a consumer group;
// Start blocks until the context is cancelled.
type Consumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
