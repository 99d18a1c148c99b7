package amqp

import (
	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type config struct {
	Address  string `envconfig:"AMQP_ADDRESS" required:"true"`
	Username string `envconfig:"AMQP_USERNAME" required:"true"`
	Password string `envconfig:"AMQP_PASSWORD" required:"true"`
}

func getConfigFromEnvironment() (config, error) {
	c := config{}
	err := envconfig.Process("", &c)
	return c, errors.Wrap(err, "error getting AMQP configuration")
}

// GetWriterFactoryFromEnvironment returns a queue.WriterFactory for the AMQP
// broker described by environment variables.
func GetWriterFactoryFromEnvironment() (queue.WriterFactory, error) {
	c, err := getConfigFromEnvironment()
	if err != nil {
		return nil, err
	}
	return NewWriterFactory(c.Address, c.Username, c.Password)
}

// GetReaderFromEnvironment returns a queue.Reader for the named queue on the
// AMQP broker described by environment variables.
func GetReaderFromEnvironment(queueName string) (queue.Reader, error) {
	c, err := getConfigFromEnvironment()
	if err != nil {
		return nil, err
	}
	return NewReader(c.Address, c.Username, c.Password, queueName)
}
