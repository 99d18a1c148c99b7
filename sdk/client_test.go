package sdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAPIClient(t *testing.T) {
	client := NewAPIClient("http://localhost:8080", "foo", false)
	require.IsType(t, &apiClient{}, client)
	require.NotNil(t, client.Users())
	require.NotNil(t, client.Sessions())
	require.NotNil(t, client.System())
}
