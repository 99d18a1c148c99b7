package authx

import (
	"context"
	"net/http"

	"github.com/filesmanager/filesmanager/sdk/internal/restmachinery"
)

// User represents a registered account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserRegistration carries the credentials for a new User.
type UserRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsersClient is the specialized client for managing Users.
type UsersClient interface {
	// Create registers a new User.
	Create(context.Context, UserRegistration) (User, error)
	// GetMe retrieves the User the client's token belongs to.
	GetMe(context.Context) (User, error)
}

type usersClient struct {
	*restmachinery.BaseClient
}

// NewUsersClient returns a specialized client for managing Users.
func NewUsersClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) UsersClient {
	return &usersClient{
		BaseClient: restmachinery.NewBaseClient(
			apiAddress,
			apiToken,
			allowInsecure,
		),
	}
}

func (u *usersClient) Create(
	ctx context.Context,
	registration UserRegistration,
) (User, error) {
	user := User{}
	return user, u.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "users",
			ReqBodyObj:  registration,
			SuccessCode: http.StatusCreated,
			RespObj:     &user,
		},
	)
}

func (u *usersClient) GetMe(ctx context.Context) (User, error) {
	user := User{}
	return user, u.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "users/me",
			AuthHeaders: u.TokenAuthHeaders(),
			SuccessCode: http.StatusOK,
			RespObj:     &user,
		},
	)
}
