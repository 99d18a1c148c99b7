package sdk

import (
	"github.com/filesmanager/filesmanager/sdk/authx"
	"github.com/filesmanager/filesmanager/sdk/system"
)

// APIClient is the root of a tree of specialized API clients.
type APIClient interface {
	// Users returns a specialized client for User management.
	Users() authx.UsersClient
	// Sessions returns a specialized client for logging in and out.
	Sessions() authx.SessionsClient
	// System returns a specialized client for system-wide information.
	System() system.Client
}

type apiClient struct {
	usersClient    authx.UsersClient
	sessionsClient authx.SessionsClient
	systemClient   system.Client
}

// NewAPIClient returns an APIClient for the API server at the given address.
// apiToken may be empty for clients that have not logged in.
func NewAPIClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) APIClient {
	return &apiClient{
		usersClient:    authx.NewUsersClient(apiAddress, apiToken, allowInsecure),
		sessionsClient: authx.NewSessionsClient(apiAddress, apiToken, allowInsecure),
		systemClient:   system.NewClient(apiAddress, allowInsecure),
	}
}

func (a *apiClient) Users() authx.UsersClient {
	return a.usersClient
}

func (a *apiClient) Sessions() authx.SessionsClient {
	return a.sessionsClient
}

func (a *apiClient) System() system.Client {
	return a.systemClient
}
