package listener

import "context"

// Listener is a network front-end serving the application handler.
type Listener interface {
	Addr() string
	Start(ctx context.Context) error
	Stop() error
	Type() string
}
