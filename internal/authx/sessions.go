package authx

import (
	"context"
	"fmt"
	"time"

	"github.com/filesmanager/filesmanager/internal/kv"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/filesmanager/filesmanager/internal/metrics"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionTTL is how long an issued token remains valid. Expiry is fixed
	// from the moment of issue; using a token does not extend it.
	SessionTTL = 24 * time.Hour

	sessionKeyPrefix = "auth_"
)

// Token represents an opaque bearer token that identifies a Session.
type Token struct {
	Value string `json:"token"`
}

func sessionKey(token string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, token)
}

// SessionsService is the specialized interface for managing Sessions. A
// Session is nothing more than an unexpired mapping from a token to a User
// ID held in a kv.Store.
type SessionsService interface {
	// Issue creates a new Session for the specified User and returns its Token.
	// Every call yields a distinct Token.
	Issue(ctx context.Context, userID string) (Token, error)
	// Resolve returns the ID of the User the token belongs to. found is false
	// when the token was never issued, has expired, or was revoked.
	Resolve(ctx context.Context, token string) (userID string, found bool, err error)
	// Revoke ends the Session identified by the token. Revoking an unknown
	// token is not an error.
	Revoke(ctx context.Context, token string) error
	// Login verifies the specified credentials and issues a Token for the
	// matching User. If the credentials are wrong, implementations MUST return
	// a *meta.ErrAuthentication error.
	Login(ctx context.Context, email string, password string) (Token, error)
}

type sessionsService struct {
	kvStore    kv.Store
	usersStore UsersStore
	ttl        time.Duration
}

// NewSessionsService returns a specialized interface for managing Sessions.
func NewSessionsService(
	kvStore kv.Store,
	usersStore UsersStore,
) SessionsService {
	return &sessionsService{
		kvStore:    kvStore,
		usersStore: usersStore,
		ttl:        SessionTTL,
	}
}

func (s *sessionsService) Issue(
	ctx context.Context,
	userID string,
) (Token, error) {
	token := Token{
		Value: uuid.NewV4().String(),
	}
	if err := s.kvStore.SetWithExpiry(
		ctx,
		sessionKey(token.Value),
		userID,
		s.ttl,
	); err != nil {
		return Token{}, errors.Wrapf(
			err,
			"error storing new session for user %q",
			userID,
		)
	}
	metrics.SessionsIssued.Inc()
	return token, nil
}

func (s *sessionsService) Resolve(
	ctx context.Context,
	token string,
) (string, bool, error) {
	userID, found, err := s.kvStore.Get(ctx, sessionKey(token))
	if err != nil {
		metrics.SessionLookups.WithLabelValues(metrics.LookupResultError).Inc()
		return "", false, errors.Wrap(err, "error resolving session token")
	}
	if !found {
		metrics.SessionLookups.WithLabelValues(metrics.LookupResultMiss).Inc()
		return "", false, nil
	}
	metrics.SessionLookups.WithLabelValues(metrics.LookupResultHit).Inc()
	return userID, true, nil
}

func (s *sessionsService) Revoke(ctx context.Context, token string) error {
	if err := s.kvStore.Delete(ctx, sessionKey(token)); err != nil {
		return errors.Wrap(err, "error revoking session token")
	}
	return nil
}

func (s *sessionsService) Login(
	ctx context.Context,
	email string,
	password string,
) (Token, error) {
	if email == "" || password == "" {
		return Token{}, &meta.ErrAuthentication{
			Reason: "Missing credentials.",
		}
	}
	user, err := s.usersStore.GetByEmail(ctx, email)
	if err != nil {
		if _, ok := errors.Cause(err).(*meta.ErrNotFound); ok {
			return Token{}, &meta.ErrAuthentication{
				Reason: fmt.Sprintf("No user with email %q.", email),
			}
		}
		return Token{}, errors.Wrapf(err, "error retrieving user %q", email)
	}
	if err = bcrypt.CompareHashAndPassword(
		[]byte(user.HashedPassword),
		[]byte(password),
	); err != nil {
		return Token{}, &meta.ErrAuthentication{
			Reason: fmt.Sprintf("Wrong password for user %q.", email),
		}
	}
	return s.Issue(ctx, user.ID)
}
