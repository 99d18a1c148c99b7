package amqp

import (
	"context"

	amqp "github.com/Azure/go-amqp"
	"github.com/filesmanager/filesmanager/internal/queue"
)

type writerFactory struct {
	connector *connector
}

// NewWriterFactory returns a queue.WriterFactory that sends messages to
// queues on an AMQP 1.0 broker. The connection is established eagerly.
func NewWriterFactory(
	address string,
	username string,
	password string,
) (queue.WriterFactory, error) {
	return newWriterFactory(
		newConnector(
			newDialFn(address, amqp.ConnSASLPlain(username, password)),
		),
	)
}

func newWriterFactory(c *connector) (*writerFactory, error) {
	if err := c.connect(); err != nil {
		return nil, err
	}
	return &writerFactory{connector: c}, nil
}

func (w *writerFactory) NewWriter(queueName string) (queue.Writer, error) {
	var s sender
	if err := w.connector.openLink(
		queueName,
		func(conn connection) error {
			var err error
			s, err = conn.newSender(queueName)
			return err
		},
	); err != nil {
		return nil, err
	}
	return &writer{
		queueName: queueName,
		sender:    s,
	}, nil
}

func (w *writerFactory) Close(context.Context) error {
	return w.connector.close()
}
