package authn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/filesmanager/filesmanager/internal/authx"
	redisstore "github.com/filesmanager/filesmanager/internal/kv/redis"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const testUserID = "507f1f77bcf86cd799439011"

func findTestUser(_ context.Context, id string) (authx.User, error) {
	if id != testUserID {
		return authx.User{}, &meta.ErrNotFound{Type: "User", ID: id}
	}
	return authx.User{ID: testUserID, Email: "bob@example.com"}, nil
}

func serve(
	t *testing.T,
	filter interface {
		Decorate(http.HandlerFunc) http.HandlerFunc
	},
	token string,
) (*httptest.ResponseRecorder, bool) {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	rr := httptest.NewRecorder()
	handlerCalled := false
	filter.Decorate(func(_ http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		user, ok := authx.UserFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, testUserID, user.ID)
		require.Equal(t, token, authx.TokenFromContext(r.Context()))
	})(rr, req)
	return rr, handlerCalled
}

func TestTokenAuthFilterWithHeaderMissing(t *testing.T) {
	a := NewTokenAuthFilter(
		func(context.Context, string) (string, bool, error) {
			require.Fail(t, "session store should not have been consulted")
			return "", false, nil
		},
		findTestUser,
	)
	rr, handlerCalled := serve(t, a, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	require.False(t, handlerCalled)
}

func TestTokenAuthFilterWithTokenUnknown(t *testing.T) {
	a := NewTokenAuthFilter(
		func(context.Context, string) (string, bool, error) {
			return "", false, nil
		},
		findTestUser,
	)
	rr, handlerCalled := serve(t, a, "foo")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	require.False(t, handlerCalled)
}

func TestTokenAuthFilterWithSessionStoreUnavailable(t *testing.T) {
	a := NewTokenAuthFilter(
		func(context.Context, string) (string, bool, error) {
			return "", false, errors.Wrap(
				&meta.ErrStoreUnavailable{Store: "redis"},
				"error resolving session token",
			)
		},
		findTestUser,
	)
	rr, handlerCalled := serve(t, a, "foo")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
	require.False(t, handlerCalled)
}

func TestTokenAuthFilterWithUserMissing(t *testing.T) {
	a := NewTokenAuthFilter(
		func(context.Context, string) (string, bool, error) {
			return "5f0000000000000000000000", true, nil
		},
		findTestUser,
	)
	rr, handlerCalled := serve(t, a, "foo")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, handlerCalled)
}

func TestTokenAuthFilterWithUserStoreUnavailable(t *testing.T) {
	a := NewTokenAuthFilter(
		func(context.Context, string) (string, bool, error) {
			return testUserID, true, nil
		},
		func(context.Context, string) (authx.User, error) {
			return authx.User{}, &meta.ErrStoreUnavailable{Store: "mongodb"}
		},
	)
	rr, handlerCalled := serve(t, a, "foo")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.False(t, handlerCalled)
}

// TestTokenAuthFilterWithRealSessions exercises the filter against sessions
// issued into a Redis-backed store.
func TestTokenAuthFilterWithRealSessions(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	kvStore := redisstore.NewStore(
		redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		nil,
	)
	require.NoError(t, kvStore.Open(ctx))
	defer kvStore.Close() // nolint: errcheck
	sessionsService := authx.NewSessionsService(kvStore, nil)
	a := NewTokenAuthFilter(sessionsService.Resolve, findTestUser)

	token, err := sessionsService.Issue(ctx, testUserID)
	require.NoError(t, err)

	rr, handlerCalled := serve(t, a, token.Value)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, handlerCalled)

	mr.FastForward(authx.SessionTTL + time.Second)
	rr, handlerCalled = serve(t, a, token.Value)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, handlerCalled)
}
