package main

// nolint: lll
import (
	"context"
	"time"

	"github.com/filesmanager/filesmanager/internal/authx"
	authxMongodb "github.com/filesmanager/filesmanager/internal/authx/mongodb"
	authxREST "github.com/filesmanager/filesmanager/internal/authx/rest"
	"github.com/filesmanager/filesmanager/internal/jobs"
	"github.com/filesmanager/filesmanager/internal/kv"
	kvRedis "github.com/filesmanager/filesmanager/internal/kv/redis"
	"github.com/filesmanager/filesmanager/internal/mongodb"
	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/filesmanager/filesmanager/internal/queue/amqp"
	queueRedis "github.com/filesmanager/filesmanager/internal/queue/redis"
	"github.com/filesmanager/filesmanager/internal/redis"
	"github.com/filesmanager/filesmanager/internal/restmachinery"
	"github.com/filesmanager/filesmanager/internal/restmachinery/authn"
	"github.com/filesmanager/filesmanager/internal/system"
	systemMongodb "github.com/filesmanager/filesmanager/internal/system/mongodb"
	systemREST "github.com/filesmanager/filesmanager/internal/system/rest"
	"github.com/golang/glog"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	queueBackendRedis = "redis"
	queueBackendAMQP  = "amqp"
)

type config struct {
	QueueBackend           string        `envconfig:"QUEUE_BACKEND" default:"redis"`
	RedisHeartbeatInterval time.Duration `envconfig:"REDIS_HEARTBEAT_INTERVAL" default:"5s"`
}

// apiServer bundles the server with the long-lived connections it was built
// on so they can be released on shutdown.
type apiServer struct {
	restmachinery.Server
	kvStore    kv.Store
	dispatcher jobs.Dispatcher
	database   *mongo.Database
}

func (a *apiServer) close(ctx context.Context) {
	if err := a.dispatcher.Close(ctx); err != nil {
		glog.Error(err)
	}
	if err := a.kvStore.Close(); err != nil {
		glog.Error(err)
	}
	if err := a.database.Client().Disconnect(ctx); err != nil {
		glog.Error(err)
	}
}

func getAPIServerFromEnvironment(ctx context.Context) (*apiServer, error) {
	c := config{}
	if err := envconfig.Process("", &c); err != nil {
		return nil, errors.Wrap(err, "error getting configuration")
	}

	// API server config
	apiConfig, err := restmachinery.GetConfigFromEnvironment()
	if err != nil {
		return nil, err
	}

	// Common
	database, err := mongodb.Database()
	if err != nil {
		return nil, err
	}
	redisClient, redisPrefix, err := redis.Client()
	if err != nil {
		return nil, err
	}

	// Key-value store for sessions. A failure to connect right now is not
	// fatal; the heartbeat keeps trying and /status reports it meanwhile.
	kvStore := kvRedis.NewStore(
		redisClient,
		&kvRedis.StoreOptions{
			Prefix:            redisPrefix,
			HeartbeatInterval: c.RedisHeartbeatInterval,
		},
	)
	if err = kvStore.Open(ctx); err != nil {
		glog.Warningf("redis is not available yet: %s", err)
	}

	// Jobs
	var writerFactory queue.WriterFactory
	switch c.QueueBackend {
	case queueBackendRedis:
		writerFactory = queueRedis.NewWriterFactory(redisClient, redisPrefix)
	case queueBackendAMQP:
		if writerFactory, err = amqp.GetWriterFactoryFromEnvironment(); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unrecognized queue backend %q", c.QueueBackend)
	}
	dispatcher := jobs.NewDispatcher(writerFactory)

	// Users
	usersStore, err := authxMongodb.NewUsersStore(database)
	if err != nil {
		return nil, err
	}
	usersService := authx.NewUsersService(usersStore, dispatcher)

	// Sessions-- depends on users
	sessionsService := authx.NewSessionsService(kvStore, usersStore)

	// System
	systemService := system.NewService(
		kvStore.IsAlive,
		func(ctx context.Context) error {
			return mongodb.CheckHealth(ctx, database)
		},
		systemMongodb.NewStatsStore(database),
	)

	tokenAuthFilter := authn.NewTokenAuthFilter(
		sessionsService.Resolve,
		usersService.Get,
	)

	return &apiServer{
		Server: restmachinery.NewServer(
			apiConfig,
			[]restmachinery.Endpoints{
				authxREST.NewSessionsEndpoints(sessionsService),
				authxREST.NewUsersEndpoints(tokenAuthFilter, usersService),
				systemREST.NewSystemEndpoints(systemService),
			},
		),
		kvStore:    kvStore,
		dispatcher: dispatcher,
		database:   database,
	}, nil
}
