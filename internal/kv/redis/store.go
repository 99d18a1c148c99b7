package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/filesmanager/filesmanager/internal/kv"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/go-redis/redis"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const storeName = "redis"

// StoreOptions represents configuration options for a Redis-based kv.Store.
type StoreOptions struct {
	// Prefix, if non-empty, namespaces every key as "<prefix>:<key>".
	Prefix string
	// HeartbeatInterval is how often the store probes the connection in the
	// background once opened. Zero disables the heartbeat.
	HeartbeatInterval time.Duration
}

type store struct {
	redisClient       *redis.Client
	prefix            string
	heartbeatInterval time.Duration
	state             kv.StateMachine
	stopHeart         context.CancelFunc
	wg                sync.WaitGroup
	mu                sync.Mutex
}

// NewStore returns a Redis-based implementation of the kv.Store interface.
func NewStore(redisClient *redis.Client, opts *StoreOptions) kv.Store {
	if opts == nil {
		opts = &StoreOptions{}
	}
	return &store{
		redisClient:       redisClient,
		prefix:            opts.Prefix,
		heartbeatInterval: opts.HeartbeatInterval,
	}
}

func (s *store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.BeginConnecting()
	err := s.ping(ctx)
	if s.stopHeart == nil && s.heartbeatInterval > 0 {
		heartCtx, cancel := context.WithCancel(context.Background())
		s.stopHeart = cancel
		s.wg.Add(1)
		go s.runHeart(heartCtx)
	}
	if err != nil {
		return errors.Wrap(s.unavailable(err), "error opening redis store")
	}
	return nil
}

func (s *store) IsAlive() bool {
	return s.state.State() == kv.Connected
}

func (s *store) Get(
	ctx context.Context,
	key string,
) (string, bool, error) {
	value, err := s.redisClient.WithContext(ctx).Get(s.key(key)).Result()
	if err == redis.Nil {
		s.record(nil)
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(
			s.record(err),
			"error getting key %q",
			key,
		)
	}
	s.record(nil)
	return value, true, nil
}

func (s *store) SetWithExpiry(
	ctx context.Context,
	key string,
	value string,
	ttl time.Duration,
) error {
	if err := s.redisClient.WithContext(ctx).Set(
		s.key(key),
		value,
		ttl,
	).Err(); err != nil {
		return errors.Wrapf(s.record(err), "error setting key %q", key)
	}
	s.record(nil)
	return nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	if err := s.redisClient.WithContext(ctx).Del(s.key(key)).Err(); err != nil {
		return errors.Wrapf(s.record(err), "error deleting key %q", key)
	}
	s.record(nil)
	return nil
}

func (s *store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopHeart != nil {
		s.stopHeart()
		s.wg.Wait()
		s.stopHeart = nil
	}
	s.state.MarkDisconnected()
	if err := s.redisClient.Close(); err != nil {
		return errors.Wrap(err, "error closing redis client")
	}
	return nil
}

func (s *store) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *store) ping(ctx context.Context) error {
	return s.record(s.redisClient.WithContext(ctx).Ping().Err())
}

// record transitions the connection state according to the outcome of an
// exchange with Redis. It returns a *meta.ErrStoreUnavailable for a non-nil
// err and nil otherwise.
func (s *store) record(err error) error {
	if err == nil {
		if s.state.MarkConnected() {
			glog.Infof("redis connection is up")
		}
		return nil
	}
	if s.state.MarkDisconnected() {
		glog.Errorf("redis connection is down: %s", err)
	}
	return s.unavailable(err)
}

func (s *store) unavailable(err error) error {
	if _, ok := err.(*meta.ErrStoreUnavailable); ok {
		return err
	}
	return &meta.ErrStoreUnavailable{Store: storeName, Err: err}
}

// runHeart probes the connection at regular intervals so that liveness
// recovers even when no requests are touching the store.
func (s *store) runHeart(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
		if s.state.State() == kv.Disconnected {
			s.state.BeginConnecting()
		}
		pingCtx, cancel := context.WithTimeout(ctx, s.heartbeatInterval)
		// Any failure has already been recorded and logged
		_ = s.ping(pingCtx) // nolint: errcheck
		cancel()
	}
}
