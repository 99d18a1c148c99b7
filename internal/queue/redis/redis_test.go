package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const testQueueName = "email sending"

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close() // nolint: errcheck
		mr.Close()
	})
	return client, mr
}

func TestKeys(t *testing.T) {
	require.Equal(t, "foo:pending", pendingListKey("", "foo"))
	require.Equal(t, "fm:foo:pending", pendingListKey("fm", "foo"))
	require.Equal(t, "fm:foo:messages", messagesHashKey("fm", "foo"))
	require.Equal(t, "fm:foo:active:bar", activeListKey("fm", "foo", "bar"))
}

func TestWrite(t *testing.T) {
	client, mr := newTestClient(t)
	w, err := NewWriterFactory(client, "fm").NewWriter(testQueueName)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), []byte("foo")))

	pending, err := mr.List(pendingListKey("fm", testQueueName))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	messageJSON := mr.HGet(messagesHashKey("fm", testQueueName), pending[0])
	message, err := queue.NewMessageFromJSON([]byte(messageJSON))
	require.NoError(t, err)
	require.Equal(t, pending[0], message.ID)
	require.Equal(t, []byte("foo"), message.Body)
}

func TestWriteUnavailable(t *testing.T) {
	client, mr := newTestClient(t)
	w, err := NewWriterFactory(client, "").NewWriter(testQueueName)
	require.NoError(t, err)
	mr.Close()
	require.Error(t, w.Write(context.Background(), []byte("foo")))
}

func TestReadHandlesAndAcknowledges(t *testing.T) {
	client, mr := newTestClient(t)
	w, err := NewWriterFactory(client, "").NewWriter(testQueueName)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), []byte("foo")))
	require.NoError(t, w.Write(context.Background(), []byte("bar")))

	r := NewReader(
		client,
		testQueueName,
		&ReaderOptions{
			ConsumerID:            "test",
			NoResultPauseInterval: 10 * time.Millisecond,
		},
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mu := sync.Mutex{}
	bodies := []string{}
	errCh := make(chan error)
	go func() {
		errCh <- r.Read(ctx, func(_ context.Context, m queue.Message) error {
			mu.Lock()
			defer mu.Unlock()
			bodies = append(bodies, string(m.Body))
			if len(bodies) == 2 {
				cancel()
			}
			return nil
		})
	}()
	require.Equal(t, context.Canceled, <-errCh)
	// Messages are handled in the order they were written
	require.Equal(t, []string{"foo", "bar"}, bodies)

	require.False(t, mr.Exists(pendingListKey("", testQueueName)))
	require.False(t, mr.Exists(activeListKey("", testQueueName, "test")))
	require.False(t, mr.Exists(messagesHashKey("", testQueueName)))
}

func TestReadLeavesFailedMessagesForRedelivery(t *testing.T) {
	client, mr := newTestClient(t)
	w, err := NewWriterFactory(client, "").NewWriter(testQueueName)
	require.NoError(t, err)
	require.NoError(t, w.Write(context.Background(), []byte("foo")))

	opts := &ReaderOptions{
		ConsumerID:            "test",
		NoResultPauseInterval: 10 * time.Millisecond,
	}

	// First consumer fails to handle the message
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error)
	go func() {
		errCh <- NewReader(client, testQueueName, opts).Read(
			ctx,
			func(context.Context, queue.Message) error {
				cancel()
				return errors.New("smtp server is down")
			},
		)
	}()
	require.Equal(t, context.Canceled, <-errCh)
	active, err := mr.List(activeListKey("", testQueueName, "test"))
	require.NoError(t, err)
	require.Len(t, active, 1)

	// A restarted consumer with the same ID picks it up again
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	var redelivered string
	go func() {
		errCh <- NewReader(client, testQueueName, opts).Read(
			ctx,
			func(_ context.Context, m queue.Message) error {
				redelivered = string(m.Body)
				cancel()
				return nil
			},
		)
	}()
	require.Equal(t, context.Canceled, <-errCh)
	require.Equal(t, "foo", redelivered)
	require.False(t, mr.Exists(messagesHashKey("", testQueueName)))
}

func TestReadDiscardsMissingMessages(t *testing.T) {
	client, mr := newTestClient(t)
	_, err := mr.Lpush(pendingListKey("", testQueueName), "ghost")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(
		context.Background(),
		200*time.Millisecond,
	)
	defer cancel()
	var handled bool
	err = NewReader(
		client,
		testQueueName,
		&ReaderOptions{NoResultPauseInterval: 10 * time.Millisecond},
	).Read(ctx, func(context.Context, queue.Message) error {
		handled = true
		return nil
	})
	require.Equal(t, context.DeadlineExceeded, err)
	require.False(t, handled)
	require.False(t, mr.Exists(activeListKey("", testQueueName, "default")))
}
