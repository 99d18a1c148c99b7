package redis

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "REDIS"

// config represents common configuration options for a Redis connection
type config struct {
	Host             string        `envconfig:"HOST" required:"true"`
	Port             int           `envconfig:"PORT" default:"6379"`
	Password         string        `envconfig:"PASSWORD"`
	DB               int           `envconfig:"DB"`
	EnableTLS        bool          `envconfig:"ENABLE_TLS"`
	Prefix           string        `envconfig:"PREFIX"`
	DialTimeout      time.Duration `envconfig:"DIAL_TIMEOUT" default:"2s"`
	OperationTimeout time.Duration `envconfig:"OPERATION_TIMEOUT" default:"2s"`
	MaxRetries       int           `envconfig:"MAX_RETRIES" default:"1"`
}

// Client returns a Redis client configured by environment variables along
// with the key prefix (possibly empty) that callers should namespace keys
// with. The client connects lazily; nothing here touches the network.
func Client() (*redis.Client, string, error) {
	c := config{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return nil, "", errors.Wrap(
			err,
			"error getting redis configuration from environment",
		)
	}

	redisOpts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", c.Host, c.Port),
		Password:     c.Password,
		DB:           c.DB,
		MaxRetries:   c.MaxRetries,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.OperationTimeout,
		WriteTimeout: c.OperationTimeout,
	}
	if c.EnableTLS {
		redisOpts.TLSConfig = &tls.Config{
			ServerName: c.Host,
		}
	}

	return redis.NewClient(redisOpts), c.Prefix, nil
}
