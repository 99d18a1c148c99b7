package authn

import (
	"context"
	"net/http"

	"github.com/filesmanager/filesmanager/internal/authx"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/filesmanager/filesmanager/internal/restmachinery"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// TokenHeader is the request header that carries a session token.
const TokenHeader = "x-token"

// ResolveSessionFn is the signature for any function that can map a session
// token to the ID of the User it belongs to.
type ResolveSessionFn func(
	ctx context.Context,
	token string,
) (userID string, found bool, err error)

// FindUserFn is the signature for any function that can find a User by ID.
type FindUserFn func(ctx context.Context, id string) (authx.User, error)

type tokenAuthFilter struct {
	resolveSession ResolveSessionFn
	findUser       FindUserFn
}

// NewTokenAuthFilter returns a component that implements the
// restmachinery.Filter interface and admits only requests bearing the token
// of a live session for an existing User. It never creates or ends sessions.
func NewTokenAuthFilter(
	resolveSession ResolveSessionFn,
	findUser FindUserFn,
) restmachinery.Filter {
	return &tokenAuthFilter{
		resolveSession: resolveSession,
		findUser:       findUser,
	}
}

func (t *tokenAuthFilter) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			restmachinery.WriteAPIResponse(
				w,
				http.StatusUnauthorized,
				&meta.ErrAuthentication{
					Reason: `"x-token" header is missing.`,
				},
			)
			return
		}

		userID, found, err := t.resolveSession(r.Context(), token)
		if err != nil {
			glog.Errorf("error resolving session token: %s", err)
			restmachinery.WriteAPIResponse(
				w,
				http.StatusInternalServerError,
				&meta.ErrInternalServer{},
			)
			return
		}
		if !found {
			restmachinery.WriteAPIResponse(
				w,
				http.StatusUnauthorized,
				&meta.ErrAuthentication{
					Reason: "Session not found or expired. Please log in again.",
				},
			)
			return
		}

		user, err := t.findUser(r.Context(), userID)
		if err != nil {
			if _, ok := errors.Cause(err).(*meta.ErrNotFound); ok {
				// The user was removed after the session was issued.
				restmachinery.WriteAPIResponse(
					w,
					http.StatusUnauthorized,
					&meta.ErrAuthentication{
						Reason: "Session belongs to a user that no longer exists.",
					},
				)
				return
			}
			glog.Errorf("error finding user %q for session: %s", userID, err)
			restmachinery.WriteAPIResponse(
				w,
				http.StatusInternalServerError,
				&meta.ErrInternalServer{},
			)
			return
		}

		// Success! Add the user and the token to the context.
		ctx := authx.ContextWithUser(r.Context(), user)
		ctx = authx.ContextWithToken(ctx, token)
		handle(w, r.WithContext(ctx))
	}
}
