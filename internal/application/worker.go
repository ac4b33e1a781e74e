package application

import "context"

// Worker runs a polling loop until the context is cancelled. Start blocks;
// it returns nil on cancellation and an error only when the loop cannot
// continue, e.g. the sample store rejects writes.
type Worker interface {
	Start(ctx context.Context) error
}
