package main

// nolint: lll
import (
	"context"
	"flag"
	"os"
	"time"

	authxMongodb "github.com/filesmanager/filesmanager/internal/authx/mongodb"
	"github.com/filesmanager/filesmanager/internal/jobs"
	"github.com/filesmanager/filesmanager/internal/mongodb"
	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/filesmanager/filesmanager/internal/queue/amqp"
	queueRedis "github.com/filesmanager/filesmanager/internal/queue/redis"
	"github.com/filesmanager/filesmanager/internal/redis"
	"github.com/filesmanager/filesmanager/internal/signals"
	"github.com/filesmanager/filesmanager/internal/version"
	"github.com/filesmanager/filesmanager/internal/worker"
	"github.com/golang/glog"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	queueBackendRedis = "redis"
	queueBackendAMQP  = "amqp"
)

type config struct {
	// ConsumerID must be stable across restarts for unacknowledged jobs to be
	// picked up again.
	ConsumerID   string `envconfig:"WORKER_CONSUMER_ID"`
	QueueBackend string `envconfig:"QUEUE_BACKEND" default:"redis"`
}

func main() {
	// We need to parse flags for glog-related options to take effect
	flag.Parse()
	defer glog.Flush()

	glog.Infof(
		"Starting files-manager Worker -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	c := config{}
	if err := envconfig.Process("", &c); err != nil {
		glog.Fatal(err)
	}
	if c.ConsumerID == "" {
		var err error
		if c.ConsumerID, err = os.Hostname(); err != nil {
			glog.Fatal(err)
		}
	}

	database, err := mongodb.Database()
	if err != nil {
		glog.Fatal(err)
	}
	defer func() {
		disconnectCtx, cancel :=
			context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.Client().Disconnect(disconnectCtx); err != nil {
			glog.Error(err)
		}
	}()
	usersStore, err := authxMongodb.NewUsersStore(database)
	if err != nil {
		glog.Fatal(err)
	}

	reader, closeReader, err := getReader(c)
	if err != nil {
		glog.Fatal(err)
	}
	defer closeReader()

	glog.Infof(
		"Worker %q is consuming queue %q",
		c.ConsumerID,
		jobs.QueueEmailSending,
	)
	if err := reader.Read(
		signals.Context(),
		worker.NewEmailSendingHandler(usersStore.Get, worker.LogSender),
	); err != nil && err != context.Canceled {
		glog.Error(err)
	}
}

// getReader returns a queue.Reader for the email sending queue on the
// configured backend, along with a func that releases what it holds.
func getReader(c config) (queue.Reader, func(), error) {
	switch c.QueueBackend {
	case queueBackendRedis:
		redisClient, redisPrefix, err := redis.Client()
		if err != nil {
			return nil, nil, err
		}
		reader := queueRedis.NewReader(
			redisClient,
			jobs.QueueEmailSending,
			&queueRedis.ReaderOptions{
				Prefix:     redisPrefix,
				ConsumerID: c.ConsumerID,
			},
		)
		closeFn := func() {
			redisClient.Close() // nolint: errcheck
		}
		return reader, closeFn, nil
	case queueBackendAMQP:
		// The AMQP reader releases its connection when Read returns.
		reader, err := amqp.GetReaderFromEnvironment(jobs.QueueEmailSending)
		return reader, func() {}, err
	default:
		return nil, nil, errors.Errorf(
			"unrecognized queue backend %q",
			c.QueueBackend,
		)
	}
}
