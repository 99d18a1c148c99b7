package system

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Status reports whether each backing store is currently reachable.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats reports how many of each kind of record the system holds.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// IsAliveFn reports connection health without blocking.
type IsAliveFn func() bool

// CheckHealthFn probes a connection and returns an error if it is unhealthy.
type CheckHealthFn func(context.Context) error

// Service is the specialized interface for system-wide information.
type Service interface {
	// Status reports backing store liveness. It never fails; an unreachable
	// store is simply reported as not alive.
	Status(context.Context) (Status, error)
	// Stats counts users and files.
	Stats(context.Context) (Stats, error)
}

type service struct {
	redisAlive IsAliveFn
	checkDB    CheckHealthFn
	statsStore StatsStore
}

// NewService returns a specialized interface for system-wide information.
func NewService(
	redisAlive IsAliveFn,
	checkDB CheckHealthFn,
	statsStore StatsStore,
) Service {
	return &service{
		redisAlive: redisAlive,
		checkDB:    checkDB,
		statsStore: statsStore,
	}
}

func (s *service) Status(ctx context.Context) (Status, error) {
	status := Status{
		Redis: s.redisAlive(),
		DB:    true,
	}
	if err := s.checkDB(ctx); err != nil {
		glog.Warningf("database health check failed: %s", err)
		status.DB = false
	}
	return status, nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{}
	var err error
	if stats.Users, err = s.statsStore.CountUsers(ctx); err != nil {
		return stats, errors.Wrap(err, "error counting users")
	}
	if stats.Files, err = s.statsStore.CountFiles(ctx); err != nil {
		return stats, errors.Wrap(err, "error counting files")
	}
	return stats, nil
}

// StatsStore is an interface for components that can count stored records.
type StatsStore interface {
	CountUsers(context.Context) (int64, error)
	CountFiles(context.Context) (int64, error)
}
