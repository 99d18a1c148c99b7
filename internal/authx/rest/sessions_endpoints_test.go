package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filesmanager/filesmanager/internal/authx"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func TestSessionsEndpointsConnect(t *testing.T) {
	testCases := []struct {
		name         string
		setup        func(*http.Request)
		service      *mockSessionsService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "no basic auth",
			service:      &mockSessionsService{},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Unauthorized"}`,
		},
		{
			name: "bad credentials",
			setup: func(r *http.Request) {
				r.SetBasicAuth("bob@example.com", "guess")
			},
			service: &mockSessionsService{
				LoginFn: func(
					context.Context,
					string,
					string,
				) (authx.Token, error) {
					return authx.Token{}, &meta.ErrAuthentication{}
				},
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"Unauthorized"}`,
		},
		{
			name: "success",
			setup: func(r *http.Request) {
				r.SetBasicAuth("bob@example.com", "secret")
			},
			service: &mockSessionsService{
				LoginFn: func(
					_ context.Context,
					email string,
					password string,
				) (authx.Token, error) {
					require.Equal(t, "bob@example.com", email)
					require.Equal(t, "secret", password)
					return authx.Token{Value: "foo"}, nil
				},
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"token":"foo"}`,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			router := mux.NewRouter()
			NewSessionsEndpoints(testCase.service).Register(router)
			req := httptest.NewRequest(http.MethodGet, "/connect", nil)
			if testCase.setup != nil {
				testCase.setup(req)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			require.Equal(t, testCase.expectedCode, rr.Code)
			require.JSONEq(t, testCase.expectedBody, rr.Body.String())
		})
	}
}

func TestSessionsEndpointsDisconnect(t *testing.T) {
	testCases := []struct {
		name         string
		token        string
		revokeErr    error
		expectRevoke bool
		expectedCode int
	}{
		{
			name:         "no token",
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "any token",
			token:        "foo",
			expectRevoke: true,
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "store unavailable",
			token:        "foo",
			revokeErr:    &meta.ErrStoreUnavailable{Store: "redis"},
			expectRevoke: true,
			expectedCode: http.StatusInternalServerError,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			revoked := false
			router := mux.NewRouter()
			NewSessionsEndpoints(
				&mockSessionsService{
					RevokeFn: func(_ context.Context, token string) error {
						revoked = true
						require.Equal(t, testCase.token, token)
						return testCase.revokeErr
					},
				},
			).Register(router)
			req := httptest.NewRequest(http.MethodGet, "/disconnect", nil)
			if testCase.token != "" {
				req.Header.Set("x-token", testCase.token)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			require.Equal(t, testCase.expectedCode, rr.Code)
			require.Equal(t, testCase.expectRevoke, revoked)
			if testCase.expectedCode == http.StatusNoContent {
				require.Empty(t, rr.Body.String())
			}
		})
	}
}
