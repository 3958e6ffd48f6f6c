package health

import "context"

// Pinger checks that a component is ready to serve.
type Pinger interface {
	Ping(ctx context.Context) error
}
