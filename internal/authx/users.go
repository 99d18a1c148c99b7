package authx

import (
	"context"

	"github.com/filesmanager/filesmanager/internal/jobs"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account.
type User struct {
	// ID is the user's unique identifier, assigned by the store on creation.
	ID string `json:"id"`
	// Email is the user's email address. It is unique across all users.
	Email string `json:"email"`
	// HashedPassword is a one-way hash of the user's password. It never leaves
	// the server.
	HashedPassword string `json:"-"`
}

// UserRegistration carries the credentials submitted to create a new User.
type UserRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsersService is the specialized interface for managing Users. It's decoupled
// from underlying technology choices (e.g. data store) to keep business logic
// reusable and consistent while the underlying tech stack remains free to
// change.
type UsersService interface {
	// Create registers a new User and submits a welcome email job for them.
	// Missing credentials or an already registered email address produce a
	// *meta.ErrBadRequest.
	Create(context.Context, UserRegistration) (User, error)
	// Get retrieves a single User specified by their identifier.
	Get(context.Context, string) (User, error)
}

type usersService struct {
	usersStore UsersStore
	dispatcher jobs.Dispatcher
}

// NewUsersService returns a specialized interface for managing Users.
func NewUsersService(
	usersStore UsersStore,
	dispatcher jobs.Dispatcher,
) UsersService {
	return &usersService{
		usersStore: usersStore,
		dispatcher: dispatcher,
	}
}

func (u *usersService) Create(
	ctx context.Context,
	registration UserRegistration,
) (User, error) {
	if registration.Email == "" {
		return User{}, &meta.ErrBadRequest{Reason: "Missing email"}
	}
	if registration.Password == "" {
		return User{}, &meta.ErrBadRequest{Reason: "Missing password"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(registration.Password),
		bcrypt.DefaultCost,
	)
	if err == bcrypt.ErrPasswordTooLong {
		return User{}, &meta.ErrBadRequest{Reason: "Password too long"}
	}
	if err != nil {
		return User{}, errors.Wrap(err, "error hashing password")
	}

	user := User{
		Email:          registration.Email,
		HashedPassword: string(hashedPassword),
	}
	if user.ID, err = u.usersStore.Create(ctx, user); err != nil {
		if _, ok := errors.Cause(err).(*meta.ErrConflict); ok {
			return User{}, &meta.ErrBadRequest{Reason: "Already exist"}
		}
		return User{}, errors.Wrapf(
			err,
			"error storing new user %q",
			registration.Email,
		)
	}

	// The user exists now regardless of what happens to the welcome email.
	if err := u.dispatcher.Enqueue(
		ctx,
		jobs.QueueEmailSending,
		jobs.EmailSending{UserID: user.ID},
	); err != nil {
		glog.Errorf(
			"error submitting welcome email job for user %q: %s",
			user.ID,
			err,
		)
	}

	return user, nil
}

func (u *usersService) Get(ctx context.Context, id string) (User, error) {
	user, err := u.usersStore.Get(ctx, id)
	if err != nil {
		return user, errors.Wrapf(
			err,
			"error retrieving user %q from store",
			id,
		)
	}
	return user, nil
}

// UsersStore is an interface for components that implement User persistence
// concerns.
type UsersStore interface {
	// Create persists a new User and returns the identifier the store assigned
	// to it. If a User with the same email address already exists,
	// implementations MUST return a *meta.ErrConflict error.
	Create(context.Context, User) (string, error)
	// Get retrieves a single User by their identifier. If no such User exists,
	// implementations MUST return a *meta.ErrNotFound error.
	Get(ctx context.Context, id string) (User, error)
	// GetByEmail retrieves a single User by their email address. If no such
	// User exists, implementations MUST return a *meta.ErrNotFound error.
	GetByEmail(ctx context.Context, email string) (User, error)
	// Count returns the total number of Users.
	Count(context.Context) (int64, error)
}
