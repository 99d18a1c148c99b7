package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/filesmanager/filesmanager/internal/mongodb"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStatsStore(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI is not set")
	}
	ctx := context.Background()
	database, err := mongodb.Connect(
		uri,
		fmt.Sprintf("stats_store_test_%d", time.Now().UnixNano()),
	)
	require.NoError(t, err)
	defer func() {
		database.Drop(ctx)                // nolint: errcheck
		database.Client().Disconnect(ctx) // nolint: errcheck
	}()

	_, err = database.Collection("users").InsertOne(
		ctx,
		bson.M{"email": "bob@example.com"},
	)
	require.NoError(t, err)
	_, err = database.Collection("files").InsertMany(
		ctx,
		[]interface{}{bson.M{"name": "a"}, bson.M{"name": "b"}},
	)
	require.NoError(t, err)

	store := NewStatsStore(database)
	users, err := store.CountUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), users)
	files, err := store.CountFiles(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), files)
}
