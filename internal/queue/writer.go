package queue

import "context"

// Writer is an interface for components that can submit messages to a single
// named queue.
type Writer interface {
	// Write submits a message body for asynchronous handling. It returns as
	// soon as the queue has accepted the message.
	Write(ctx context.Context, body []byte) error
	// Close releases any resources held by the Writer.
	Close(context.Context) error
}

// WriterFactory is an interface for components that produce Writers for
// named queues over a shared connection.
type WriterFactory interface {
	NewWriter(queueName string) (Writer, error)
	Close(context.Context) error
}
