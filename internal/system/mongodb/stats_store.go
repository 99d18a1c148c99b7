package mongodb

import (
	"context"

	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/filesmanager/filesmanager/internal/system"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const storeName = "mongodb"

type statsStore struct {
	usersCollection *mongo.Collection
	filesCollection *mongo.Collection
}

// NewStatsStore returns a MongoDB-based implementation of the
// system.StatsStore interface.
func NewStatsStore(database *mongo.Database) system.StatsStore {
	return &statsStore{
		usersCollection: database.Collection("users"),
		filesCollection: database.Collection("files"),
	}
}

func (s *statsStore) CountUsers(ctx context.Context) (int64, error) {
	return count(ctx, s.usersCollection)
}

func (s *statsStore) CountFiles(ctx context.Context) (int64, error) {
	return count(ctx, s.filesCollection)
}

func count(ctx context.Context, collection *mongo.Collection) (int64, error) {
	n, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		err = errors.Wrapf(
			err,
			"error counting documents in collection %q",
			collection.Name(),
		)
		return 0, &meta.ErrStoreUnavailable{
			Store: storeName,
			Err:   err,
		}
	}
	return n, nil
}
