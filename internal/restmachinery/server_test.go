package restmachinery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type mockEndpoints struct {
	registered bool
}

func (m *mockEndpoints) Register(router *mux.Router) {
	m.registered = true
	router.HandleFunc(
		"/foo",
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		},
	).Methods(http.MethodGet)
}

func TestNewServer(t *testing.T) {
	eps := &mockEndpoints{}
	s := NewServer(NewConfigWithDefaults(), []Endpoints{eps}).(*server)
	require.True(t, eps.registered)

	testCases := []struct {
		path         string
		expectedCode int
	}{
		{path: "/healthz", expectedCode: http.StatusOK},
		{path: "/metrics", expectedCode: http.StatusOK},
		{path: "/foo", expectedCode: http.StatusTeapot},
		{path: "/bar", expectedCode: http.StatusNotFound},
	}
	for _, testCase := range testCases {
		t.Run(testCase.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			s.handler.ServeHTTP(
				rr,
				httptest.NewRequest(http.MethodGet, testCase.path, nil),
			)
			require.Equal(t, testCase.expectedCode, rr.Code)
		})
	}
}

func TestNewServerCORS(t *testing.T) {
	s := NewServer(NewConfigWithDefaults(), nil).(*server)
	req := httptest.NewRequest(http.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "x-token")
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
