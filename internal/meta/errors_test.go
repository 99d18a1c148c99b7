package meta

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorBodies(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "authentication",
			err:      &ErrAuthentication{Reason: "token expired"},
			expected: `{"error":"Unauthorized"}`,
		},
		{
			name:     "bad request",
			err:      &ErrBadRequest{Reason: "Missing email"},
			expected: `{"error":"Missing email"}`,
		},
		{
			name:     "conflict",
			err:      &ErrConflict{Type: "User", ID: "foo@bar.com"},
			expected: `{"error":"Already exist"}`,
		},
		{
			name:     "store unavailable",
			err:      &ErrStoreUnavailable{Store: "redis"},
			expected: `{"error":"Internal Server Error"}`,
		},
		{
			name:     "internal server",
			err:      &ErrInternalServer{},
			expected: `{"error":"Internal Server Error"}`,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			bodyBytes, err := json.Marshal(testCase.err)
			require.NoError(t, err)
			require.JSONEq(t, testCase.expected, string(bodyBytes))
		})
	}
}

func TestErrStoreUnavailableStopsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := errors.Wrap(
		&ErrStoreUnavailable{Store: "redis", Err: cause},
		"error resolving session",
	)
	storeErr, ok := errors.Cause(err).(*ErrStoreUnavailable)
	require.True(t, ok)
	require.Equal(t, "redis", storeErr.Store)
	require.Equal(t, cause, storeErr.Unwrap())
	require.Contains(t, err.Error(), "connection refused")
}
