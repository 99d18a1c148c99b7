package amqp

import (
	"context"

	amqp "github.com/Azure/go-amqp"
	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/pkg/errors"
)

type writer struct {
	queueName string
	sender    sender
}

func (w *writer) Write(ctx context.Context, body []byte) error {
	messageJSON, err := queue.NewMessage(body).ToJSON()
	if err != nil {
		return errors.Wrapf(
			err,
			"error encoding message for queue %q",
			w.queueName,
		)
	}
	if err := w.sender.Send(
		ctx,
		&amqp.Message{
			Header: &amqp.MessageHeader{
				Durable: true,
			},
			Data: [][]byte{messageJSON},
		},
	); err != nil {
		return errors.Wrapf(
			err,
			"error sending amqp message for queue %q",
			w.queueName,
		)
	}
	return nil
}

func (w *writer) Close(ctx context.Context) error {
	if err := w.sender.Close(ctx); err != nil {
		return errors.Wrapf(err, "error closing writer for queue %q", w.queueName)
	}
	return nil
}
