package restmachinery

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filesmanager/filesmanager/sdk/meta"
	"github.com/stretchr/testify/require"
)

const testAPIToken = "11d1f1bc-62a1-4e45-9a0c-b7a1ee1ba3e9"

func TestNewBaseClient(t *testing.T) {
	b := NewBaseClient("http://localhost:8080", testAPIToken, true)
	require.Equal(t, "http://localhost:8080", b.APIAddress)
	require.Equal(t, testAPIToken, b.APIToken)
	require.True(
		t,
		b.HTTPClient.Transport.(*http.Transport).TLSClientConfig.InsecureSkipVerify,
	)
}

func TestAuthHeaders(t *testing.T) {
	b := NewBaseClient("", testAPIToken, false)
	require.Equal(
		t,
		map[string]string{"Authorization": "Basic Ym9iOnNlY3JldA=="},
		b.BasicAuthHeaders("bob", "secret"),
	)
	require.Equal(
		t,
		map[string]string{"x-token": testAPIToken},
		b.TokenAuthHeaders(),
	)
}

func TestExecuteRequest(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/things", r.URL.Path)
				require.Equal(t, "bar", r.URL.Query().Get("foo"))
				require.Equal(t, testAPIToken, r.Header.Get("x-token"))
				require.Equal(t, "application/json", r.Header.Get("Content-Type"))
				body, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				require.JSONEq(t, `{"name":"foo"}`, string(body))
				w.WriteHeader(http.StatusCreated)
				fmt.Fprint(w, `{"name":"foo","id":"1"}`)
			},
		),
	)
	defer server.Close()
	b := NewBaseClient(server.URL, testAPIToken, false)
	resp := struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	}{}
	err := b.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        "things",
			QueryParams: map[string]string{"foo": "bar"},
			AuthHeaders: b.TokenAuthHeaders(),
			ReqBodyObj:  map[string]string{"name": "foo"},
			SuccessCode: http.StatusCreated,
			RespObj:     &resp,
		},
	)
	require.NoError(t, err)
	require.Equal(t, "1", resp.ID)
}

func TestExecuteRequestErrors(t *testing.T) {
	testCases := []struct {
		statusCode  int
		expectedErr error
	}{
		{
			statusCode:  http.StatusUnauthorized,
			expectedErr: &meta.ErrAuthentication{Reason: "nope"},
		},
		{
			statusCode:  http.StatusBadRequest,
			expectedErr: &meta.ErrBadRequest{Reason: "nope"},
		},
		{
			statusCode:  http.StatusNotFound,
			expectedErr: &meta.ErrNotFound{Reason: "nope"},
		},
		{
			statusCode:  http.StatusConflict,
			expectedErr: &meta.ErrConflict{Reason: "nope"},
		},
		{
			statusCode:  http.StatusInternalServerError,
			expectedErr: &meta.ErrInternalServer{Reason: "nope"},
		},
	}
	for _, testCase := range testCases {
		t.Run(http.StatusText(testCase.statusCode), func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, _ *http.Request) {
						w.WriteHeader(testCase.statusCode)
						fmt.Fprint(w, `{"error":"nope"}`)
					},
				),
			)
			defer server.Close()
			err := NewBaseClient(server.URL, "", false).ExecuteRequest(
				context.Background(),
				OutboundRequest{
					Method: http.MethodGet,
					Path:   "things",
				},
			)
			require.Equal(t, testCase.expectedErr, err)
		})
	}

	t.Run("unexpected status", func(t *testing.T) {
		server := httptest.NewServer(
			http.HandlerFunc(
				func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusTeapot)
				},
			),
		)
		defer server.Close()
		err := NewBaseClient(server.URL, "", false).ExecuteRequest(
			context.Background(),
			OutboundRequest{
				Method: http.MethodGet,
				Path:   "things",
			},
		)
		require.Error(t, err)
		require.Contains(t, err.Error(), "received 418")
	})
}
