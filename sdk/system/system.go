package system

import (
	"context"
	"net/http"

	"github.com/filesmanager/filesmanager/sdk/internal/restmachinery"
)

// Status reports whether each backing store is currently reachable.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats reports how many of each kind of record the system holds.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Client is the specialized client for system-wide information.
type Client interface {
	Status(context.Context) (Status, error)
	Stats(context.Context) (Stats, error)
}

type client struct {
	*restmachinery.BaseClient
}

// NewClient returns a specialized client for system-wide information.
func NewClient(apiAddress string, allowInsecure bool) Client {
	return &client{
		BaseClient: restmachinery.NewBaseClient(apiAddress, "", allowInsecure),
	}
}

func (c *client) Status(ctx context.Context) (Status, error) {
	status := Status{}
	return status, c.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "status",
			SuccessCode: http.StatusOK,
			RespObj:     &status,
		},
	)
}

func (c *client) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{}
	return stats, c.ExecuteRequest(
		ctx,
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "stats",
			SuccessCode: http.StatusOK,
			RespObj:     &stats,
		},
	)
}
