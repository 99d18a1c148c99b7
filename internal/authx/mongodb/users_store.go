package mongodb

import (
	"context"
	"time"

	"github.com/filesmanager/filesmanager/internal/authx"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/filesmanager/filesmanager/internal/mongodb"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	storeName          = "mongodb"
	createIndexTimeout = 5 * time.Second
)

// userDocument is the shape of a User in the users collection.
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}

func (u userDocument) toUser() authx.User {
	return authx.User{
		ID:             u.ID.Hex(),
		Email:          u.Email,
		HashedPassword: u.Password,
	}
}

type usersStore struct {
	collection *mongo.Collection
}

// NewUsersStore returns a MongoDB-based implementation of the
// authx.UsersStore interface. Email uniqueness is enforced by a unique index
// that is created here if it does not already exist.
func NewUsersStore(database *mongo.Database) (authx.UsersStore, error) {
	ctx, cancel :=
		context.WithTimeout(context.Background(), createIndexTimeout)
	defer cancel()
	unique := true
	collection := database.Collection("users")
	if _, err := collection.Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.M{
				"email": 1,
			},
			Options: &options.IndexOptions{
				Unique: &unique,
			},
		},
	); err != nil {
		return nil, errors.Wrap(err, "error adding indexes to users collection")
	}
	return &usersStore{
		collection: collection,
	}, nil
}

func (u *usersStore) Create(
	ctx context.Context,
	user authx.User,
) (string, error) {
	res, err := u.collection.InsertOne(
		ctx,
		userDocument{
			Email:    user.Email,
			Password: user.HashedPassword,
		},
	)
	if err != nil {
		if mongodb.IsDuplicateKeyError(err) {
			return "", &meta.ErrConflict{
				Type: "User",
				ID:   user.Email,
			}
		}
		return "", &meta.ErrStoreUnavailable{
			Store: storeName,
			Err:   errors.Wrapf(err, "error inserting new user %q", user.Email),
		}
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.Errorf(
			"unexpected type %T for id of new user %q",
			res.InsertedID,
			user.Email,
		)
	}
	return id.Hex(), nil
}

func (u *usersStore) Get(ctx context.Context, id string) (authx.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// No document can have an _id that isn't a valid ObjectID
		return authx.User{}, &meta.ErrNotFound{
			Type: "User",
			ID:   id,
		}
	}
	return u.findOne(ctx, bson.M{"_id": objectID}, id)
}

func (u *usersStore) GetByEmail(
	ctx context.Context,
	email string,
) (authx.User, error) {
	return u.findOne(ctx, bson.M{"email": email}, email)
}

func (u *usersStore) findOne(
	ctx context.Context,
	criteria bson.M,
	ref string,
) (authx.User, error) {
	doc := userDocument{}
	res := u.collection.FindOne(ctx, criteria)
	if res.Err() == mongo.ErrNoDocuments {
		return authx.User{}, &meta.ErrNotFound{
			Type: "User",
			ID:   ref,
		}
	}
	if res.Err() != nil {
		return authx.User{}, &meta.ErrStoreUnavailable{
			Store: storeName,
			Err:   errors.Wrapf(res.Err(), "error finding user %q", ref),
		}
	}
	if err := res.Decode(&doc); err != nil {
		return authx.User{}, errors.Wrapf(err, "error decoding user %q", ref)
	}
	return doc.toUser(), nil
}

func (u *usersStore) Count(ctx context.Context) (int64, error) {
	count, err := u.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, &meta.ErrStoreUnavailable{
			Store: storeName,
			Err:   errors.Wrap(err, "error counting users"),
		}
	}
	return count, nil
}
