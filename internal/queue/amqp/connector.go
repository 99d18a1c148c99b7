package amqp

import (
	"context"
	"sync"
	"time"

	"github.com/filesmanager/filesmanager/internal/retries"
	"github.com/pkg/errors"
)

const (
	connectMaxAttempts = 10
	connectMaxBackoff  = 10 * time.Second
	// Number of times a link will be retried on a fresh connection before
	// giving up.
	linkMaxReconnects = 3
)

// connector owns a single connection and re-establishes it when opening a
// link on it fails.
type connector struct {
	dial        dialFn
	maxAttempts uint8
	maxBackoff  time.Duration
	conn        connection
	connMu      sync.Mutex
}

func newConnector(dial dialFn) *connector {
	return &connector{
		dial:        dial,
		maxAttempts: connectMaxAttempts,
		maxBackoff:  connectMaxBackoff,
	}
}

// connect replaces the current connection, if any, with a new one. The
// caller must hold connMu unless the connector is not yet shared.
func (c *connector) connect() error {
	return retries.ManageRetries(
		context.Background(),
		"connect to AMQP broker",
		c.maxAttempts,
		c.maxBackoff,
		func() (bool, error) {
			if c.conn != nil {
				c.conn.Close() // nolint: errcheck
				c.conn = nil
			}
			conn, err := c.dial()
			if err != nil {
				return true, err
			}
			c.conn = conn
			return false, nil
		},
	)
}

// openLink calls open with the current connection. Each time open fails, the
// connection is replaced and open is tried again, up to linkMaxReconnects
// times. The error from the last attempt is returned.
func (c *connector) openLink(
	queueName string,
	open func(connection) error,
) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	var lastErr error
	for i := 0; i <= linkMaxReconnects; i++ {
		if i > 0 || c.conn == nil {
			if err := c.connect(); err != nil {
				return err
			}
		}
		if lastErr = open(c.conn); lastErr == nil {
			return nil
		}
	}
	return errors.Wrapf(
		lastErr,
		"error opening AMQP link for queue %q after %d reconnect(s)",
		queueName,
		linkMaxReconnects,
	)
}

func (c *connector) close() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	if err != nil {
		return errors.Wrap(err, "error closing AMQP connection")
	}
	return nil
}
