package redis

import (
	"context"

	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

// writerFactory is a Redis-based implementation of the queue.WriterFactory
// interface. All writers share the factory's client.
type writerFactory struct {
	redisClient *redis.Client
	prefix      string
}

// NewWriterFactory returns a Redis-based implementation of the
// queue.WriterFactory interface.
func NewWriterFactory(
	redisClient *redis.Client,
	prefix string,
) queue.WriterFactory {
	return &writerFactory{
		redisClient: redisClient,
		prefix:      prefix,
	}
}

func (w *writerFactory) NewWriter(queueName string) (queue.Writer, error) {
	return &writer{
		redisClient:     w.redisClient,
		queueName:       queueName,
		pendingListKey:  pendingListKey(w.prefix, queueName),
		messagesHashKey: messagesHashKey(w.prefix, queueName),
	}, nil
}

// Close is a no-op. The client belongs to whoever constructed the factory.
func (w *writerFactory) Close(context.Context) error {
	return nil
}

type writer struct {
	redisClient     *redis.Client
	queueName       string
	pendingListKey  string
	messagesHashKey string
}

func (w *writer) Write(ctx context.Context, body []byte) error {
	message := queue.NewMessage(body)
	messageJSON, err := message.ToJSON()
	if err != nil {
		return errors.Wrapf(err, "error encoding message %q", message.ID)
	}
	pipeline := w.redisClient.WithContext(ctx).TxPipeline()
	pipeline.HSet(w.messagesHashKey, message.ID, messageJSON)
	pipeline.LPush(w.pendingListKey, message.ID)
	if _, err := pipeline.Exec(); err != nil {
		return errors.Wrapf(
			err,
			"error publishing message %q to queue %q",
			message.ID,
			w.queueName,
		)
	}
	return nil
}

func (w *writer) Close(context.Context) error {
	return nil
}
