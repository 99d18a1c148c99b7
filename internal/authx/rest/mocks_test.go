package rest

import (
	"context"
	"net/http"

	"github.com/filesmanager/filesmanager/internal/authx"
)

type mockUsersService struct {
	CreateFn func(context.Context, authx.UserRegistration) (authx.User, error)
	GetFn    func(context.Context, string) (authx.User, error)
}

func (m *mockUsersService) Create(
	ctx context.Context,
	registration authx.UserRegistration,
) (authx.User, error) {
	return m.CreateFn(ctx, registration)
}

func (m *mockUsersService) Get(
	ctx context.Context,
	id string,
) (authx.User, error) {
	return m.GetFn(ctx, id)
}

type mockSessionsService struct {
	IssueFn   func(context.Context, string) (authx.Token, error)
	ResolveFn func(context.Context, string) (string, bool, error)
	RevokeFn  func(context.Context, string) error
	LoginFn   func(context.Context, string, string) (authx.Token, error)
}

func (m *mockSessionsService) Issue(
	ctx context.Context,
	userID string,
) (authx.Token, error) {
	return m.IssueFn(ctx, userID)
}

func (m *mockSessionsService) Resolve(
	ctx context.Context,
	token string,
) (string, bool, error) {
	return m.ResolveFn(ctx, token)
}

func (m *mockSessionsService) Revoke(ctx context.Context, token string) error {
	return m.RevokeFn(ctx, token)
}

func (m *mockSessionsService) Login(
	ctx context.Context,
	email string,
	password string,
) (authx.Token, error) {
	return m.LoginFn(ctx, email, password)
}

// mockFilter attaches a fixed User to every request, or rejects every request
// when no User is set.
type mockFilter struct {
	user *authx.User
}

func (m *mockFilter) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.user == nil {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		handle(w, r.WithContext(authx.ContextWithUser(r.Context(), *m.user)))
	}
}
