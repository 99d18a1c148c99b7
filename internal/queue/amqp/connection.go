package amqp

import (
	"context"

	amqp "github.com/Azure/go-amqp"
	"github.com/pkg/errors"
)

// connection is the subset of an AMQP client connection used by this
// package. Each link it opens runs on a session of its own.
type connection interface {
	newSender(queueName string) (sender, error)
	newReceiver(queueName string) (receiver, error)
	Close() error
}

type sender interface {
	Send(context.Context, *amqp.Message) error
	Close(context.Context) error
}

type receiver interface {
	Receive(context.Context) (delivery, error)
	Close(context.Context) error
}

// delivery is a received message awaiting settlement.
type delivery interface {
	GetData() []byte
	Accept() error
	Reject(*amqp.Error) error
	Release() error
}

type dialFn func() (connection, error)

func newDialFn(address string, opts ...amqp.ConnOption) dialFn {
	return func() (connection, error) {
		client, err := amqp.Dial(address, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "error dialing endpoint")
		}
		return &amqpConnection{client: client}, nil
	}
}

type amqpConnection struct {
	client *amqp.Client
}

func (a *amqpConnection) newSender(queueName string) (sender, error) {
	session, err := a.client.NewSession()
	if err != nil {
		return nil, errors.Wrap(err, "error opening AMQP session")
	}
	amqpSender, err := session.NewSender(amqp.LinkTargetAddress(queueName))
	if err != nil {
		session.Close(context.TODO()) // nolint: errcheck
		return nil, errors.Wrap(err, "error opening AMQP sender")
	}
	return &amqpSenderLink{session: session, sender: amqpSender}, nil
}

func (a *amqpConnection) newReceiver(queueName string) (receiver, error) {
	session, err := a.client.NewSession()
	if err != nil {
		return nil, errors.Wrap(err, "error opening AMQP session")
	}
	amqpReceiver, err := session.NewReceiver(
		amqp.LinkSourceAddress(queueName),
		// Link credit is 1 because we're a "slow" consumer. We do not want
		// messages piling up in a client-side buffer.
		amqp.LinkCredit(1),
	)
	if err != nil {
		session.Close(context.TODO()) // nolint: errcheck
		return nil, errors.Wrap(err, "error opening AMQP receiver")
	}
	return &amqpReceiverLink{session: session, receiver: amqpReceiver}, nil
}

func (a *amqpConnection) Close() error {
	return a.client.Close()
}

type amqpSenderLink struct {
	session *amqp.Session
	sender  *amqp.Sender
}

func (a *amqpSenderLink) Send(ctx context.Context, msg *amqp.Message) error {
	return a.sender.Send(ctx, msg)
}

func (a *amqpSenderLink) Close(ctx context.Context) error {
	if err := a.sender.Close(ctx); err != nil {
		return errors.Wrap(err, "error closing AMQP sender")
	}
	if err := a.session.Close(ctx); err != nil {
		return errors.Wrap(err, "error closing AMQP session")
	}
	return nil
}

type amqpReceiverLink struct {
	session  *amqp.Session
	receiver *amqp.Receiver
}

func (a *amqpReceiverLink) Receive(ctx context.Context) (delivery, error) {
	msg, err := a.receiver.Receive(ctx)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (a *amqpReceiverLink) Close(ctx context.Context) error {
	if err := a.receiver.Close(ctx); err != nil {
		return errors.Wrap(err, "error closing AMQP receiver")
	}
	if err := a.session.Close(ctx); err != nil {
		return errors.Wrap(err, "error closing AMQP session")
	}
	return nil
}
