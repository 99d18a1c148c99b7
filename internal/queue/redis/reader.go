package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/filesmanager/filesmanager/internal/retries"
	"github.com/go-redis/redis"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ReaderOptions represents configuration options for a Redis-based
// queue.Reader.
type ReaderOptions struct {
	// Prefix, if non-empty, namespaces every key.
	Prefix string
	// ConsumerID identifies this consumer. It should be stable across restarts
	// so that messages claimed but not acknowledged before a crash are picked
	// up again.
	ConsumerID string
	// NoResultPauseInterval is how long to wait before polling again when the
	// pending list is empty.
	NoResultPauseInterval time.Duration
	// RedisOperationMaxAttempts is how many times to attempt each Redis
	// operation before giving up.
	RedisOperationMaxAttempts uint8
	// RedisOperationMaxBackoff caps the delay between attempts.
	RedisOperationMaxBackoff time.Duration
}

func (r *ReaderOptions) applyDefaults() {
	if r.ConsumerID == "" {
		r.ConsumerID = "default"
	}
	if r.NoResultPauseInterval == 0 {
		r.NoResultPauseInterval = time.Second
	}
	if r.RedisOperationMaxAttempts == 0 {
		r.RedisOperationMaxAttempts = 5
	}
	if r.RedisOperationMaxBackoff == 0 {
		r.RedisOperationMaxBackoff = 10 * time.Second
	}
}

type reader struct {
	redisClient     *redis.Client
	queueName       string
	options         ReaderOptions
	pendingListKey  string
	messagesHashKey string
	activeListKey   string
}

// NewReader returns a Redis-based implementation of the queue.Reader
// interface.
func NewReader(
	redisClient *redis.Client,
	queueName string,
	options *ReaderOptions,
) queue.Reader {
	if options == nil {
		options = &ReaderOptions{}
	}
	opts := *options
	opts.applyDefaults()
	return &reader{
		redisClient:     redisClient,
		queueName:       queueName,
		options:         opts,
		pendingListKey:  pendingListKey(opts.Prefix, queueName),
		messagesHashKey: messagesHashKey(opts.Prefix, queueName),
		activeListKey: activeListKey(
			opts.Prefix,
			queueName,
			opts.ConsumerID,
		),
	}
}

func (r *reader) Read(ctx context.Context, handle queue.HandlerFn) error {
	if err := r.withRetries(
		ctx,
		"requeue unacknowledged messages",
		r.requeueActiveMessages,
	); err != nil {
		return err
	}
	for {
		var messageID string
		if err := r.withRetries(
			ctx,
			"dequeue a pending message",
			func() error {
				var err error
				messageID, err = r.dequeueMessage()
				return err
			},
		); err != nil {
			return err
		}

		if messageID == "" {
			select {
			// This delay stops us from taxing the CPU, network, or database when
			// the pending list is empty.
			case <-time.After(r.options.NoResultPauseInterval):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var messageJSON []byte
		if err := r.withRetries(
			ctx,
			fmt.Sprintf("retrieve message %q", messageID),
			func() error {
				var err error
				messageJSON, err = r.getMessageJSON(messageID)
				return err
			},
		); err != nil {
			return err
		}

		if messageJSON == nil {
			glog.Errorf(
				"queue %q consumer %q could not locate message %q",
				r.queueName,
				r.options.ConsumerID,
				messageID,
			)
			if err := r.withRetries(
				ctx,
				fmt.Sprintf("discard message %q", messageID),
				func() error { return r.ack(messageID) },
			); err != nil {
				return err
			}
			continue
		}

		message, err := queue.NewMessageFromJSON(messageJSON)
		if err != nil {
			glog.Errorf(
				"queue %q consumer %q failed to decode message %q: %s",
				r.queueName,
				r.options.ConsumerID,
				messageID,
				err,
			)
			if err := r.withRetries(
				ctx,
				fmt.Sprintf("discard message %q", messageID),
				func() error { return r.ack(messageID) },
			); err != nil {
				return err
			}
			continue
		}

		if err := handle(ctx, message); err != nil {
			// The message stays on this consumer's active list and will be
			// requeued the next time the consumer starts.
			glog.Errorf(
				"queue %q consumer %q failed to handle message %q: %s",
				r.queueName,
				r.options.ConsumerID,
				messageID,
				err,
			)
			continue
		}

		if err := r.withRetries(
			ctx,
			fmt.Sprintf("acknowledge message %q", messageID),
			func() error { return r.ack(messageID) },
		); err != nil {
			return err
		}
	}
}

func (r *reader) withRetries(
	ctx context.Context,
	process string,
	fn func() error,
) error {
	return retries.ManageRetries(
		ctx,
		process,
		r.options.RedisOperationMaxAttempts,
		r.options.RedisOperationMaxBackoff,
		func() (bool, error) {
			if err := fn(); err != nil {
				return true, err // Retry
			}
			return false, nil // No retry
		},
	)
}

// requeueActiveMessages moves everything left on this consumer's active list
// back to the pending list.
func (r *reader) requeueActiveMessages() error {
	for {
		messageID, err := r.redisClient.RPopLPush(
			r.activeListKey,
			r.pendingListKey,
		).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return errors.Wrapf(
				err,
				"error requeueing messages from %q",
				r.activeListKey,
			)
		}
		glog.Warningf(
			"queue %q consumer %q requeued unacknowledged message %q",
			r.queueName,
			r.options.ConsumerID,
			messageID,
		)
	}
}

func (r *reader) dequeueMessage() (string, error) {
	messageID, err := r.redisClient.RPopLPush(
		r.pendingListKey,
		r.activeListKey,
	).Result()
	if err == redis.Nil {
		return "", nil
	}
	return messageID, err
}

func (r *reader) getMessageJSON(messageID string) ([]byte, error) {
	messageJSON, err :=
		r.redisClient.HGet(r.messagesHashKey, messageID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return messageJSON, err
}

func (r *reader) ack(messageID string) error {
	pipeline := r.redisClient.TxPipeline()
	pipeline.LRem(r.activeListKey, -1, messageID)
	pipeline.HDel(r.messagesHashKey, messageID)
	_, err := pipeline.Exec()
	return err
}
