package queue

import "context"

// HandlerFn is the signature for functions that Readers call to handle a
// message. A non-nil error leaves the message unacknowledged.
type HandlerFn func(context.Context, Message) error

// Reader is an interface for components that consume messages from a single
// named queue.
type Reader interface {
	// Read blocks, handing each message to the handler, until the context is
	// canceled or a fatal error is encountered. It always returns a non-nil
	// error.
	Read(context.Context, HandlerFn) error
}
