package authx

import (
	"context"
	"net/http"

	"github.com/filesmanager/filesmanager/sdk/internal/restmachinery"
)

// Token represents an opaque bearer token that identifies a session.
type Token struct {
	Value string `json:"token"`
}

// SessionsClient is the specialized client for logging in and out.
type SessionsClient interface {
	// Create logs in with the given credentials and returns a new Token.
	Create(ctx context.Context, email string, password string) (Token, error)
	// Delete ends the session the client's token belongs to. It succeeds even
	// if that session has already ended.
	Delete(context.Context) error
}

type sessionsClient struct {
	*restmachinery.BaseClient
}

// NewSessionsClient returns a specialized client for logging in and out.
func NewSessionsClient(
	apiAddress string,
	apiToken string,
	allowInsecure bool,
) SessionsClient {
	return &sessionsClient{
		BaseClient: restmachinery.NewBaseClient(
			apiAddress,
			apiToken,
			allowInsecure,
		),
	}
}

func (s *sessionsClient) Create(
	ctx context.Context,
	email string,
	password string,
) (Token, error) {
	token := Token{}
	return token, s.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "connect",
			AuthHeaders: s.BasicAuthHeaders(email, password),
			SuccessCode: http.StatusOK,
			RespObj:     &token,
		},
	)
}

func (s *sessionsClient) Delete(ctx context.Context) error {
	return s.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "disconnect",
			AuthHeaders: s.TokenAuthHeaders(),
			SuccessCode: http.StatusNoContent,
		},
	)
}
