package amqp

import (
	"context"
	"time"

	amqp "github.com/Azure/go-amqp"
	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/golang/glog"
)

const defaultFailurePause = 5 * time.Second

type reader struct {
	connector *connector
	queueName string
	// failurePause is how long to wait after a receive or handler failure
	// before receiving again.
	failurePause time.Duration
	receiver     receiver
}

// NewReader returns a queue.Reader that consumes the named queue on an AMQP
// 1.0 broker. The connection is established eagerly.
func NewReader(
	address string,
	username string,
	password string,
	queueName string,
) (queue.Reader, error) {
	return newReader(
		newConnector(
			newDialFn(address, amqp.ConnSASLPlain(username, password)),
		),
		queueName,
	)
}

func newReader(c *connector, queueName string) (*reader, error) {
	if err := c.connect(); err != nil {
		return nil, err
	}
	return &reader{
		connector:    c,
		queueName:    queueName,
		failurePause: defaultFailurePause,
	}, nil
}

// Read accepts each message the handler succeeds with. Messages the handler
// fails are released back to the broker for redelivery. Messages that cannot
// be decoded are rejected.
func (r *reader) Read(ctx context.Context, handle queue.HandlerFn) error {
	defer r.close()
	for {
		if r.receiver == nil {
			if err := r.connector.openLink(
				r.queueName,
				func(conn connection) error {
					var err error
					r.receiver, err = conn.newReceiver(r.queueName)
					return err
				},
			); err != nil {
				return err
			}
		}

		d, err := r.receiver.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			glog.Warningf(
				"error receiving from queue %q; will reopen the link: %s",
				r.queueName,
				err,
			)
			r.closeReceiver()
			if err := r.pause(ctx); err != nil {
				return err
			}
			continue
		}

		message, err := queue.NewMessageFromJSON(d.GetData())
		if err != nil {
			glog.Errorf(
				"queue %q failed to decode message: %s",
				r.queueName,
				err,
			)
			if err := d.Reject(
				&amqp.Error{
					Condition:   amqp.ErrorDecodeError,
					Description: err.Error(),
				},
			); err != nil {
				glog.Errorf("error rejecting message on queue %q: %s", r.queueName, err)
			}
			continue
		}

		if err := handle(ctx, message); err != nil {
			glog.Errorf(
				"queue %q failed to handle message %q: %s",
				r.queueName,
				message.ID,
				err,
			)
			if err := d.Release(); err != nil {
				glog.Errorf(
					"error releasing message %q on queue %q: %s",
					message.ID,
					r.queueName,
					err,
				)
			}
			if err := r.pause(ctx); err != nil {
				return err
			}
			continue
		}

		if err := d.Accept(); err != nil {
			glog.Errorf(
				"error accepting message %q on queue %q: %s",
				message.ID,
				r.queueName,
				err,
			)
		}
	}
}

func (r *reader) pause(ctx context.Context) error {
	select {
	case <-time.After(r.failurePause):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *reader) closeReceiver() {
	if r.receiver == nil {
		return
	}
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.receiver.Close(closeCtx); err != nil {
		glog.Warningf("error closing receiver for queue %q: %s", r.queueName, err)
	}
	r.receiver = nil
}

func (r *reader) close() {
	r.closeReceiver()
	if err := r.connector.close(); err != nil {
		glog.Warningf("error closing connection for queue %q: %s", r.queueName, err)
	}
}
