package rest

import (
	"net/http"

	"github.com/filesmanager/filesmanager/internal/authx"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/filesmanager/filesmanager/internal/restmachinery"
	"github.com/gorilla/mux"
	"github.com/xeipuuv/gojsonschema"
)

// Both fields are left optional and nullable here so that the service can
// report exactly which one is missing.
const userRegistrationSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"email": { "type": ["string", "null"] },
		"password": { "type": ["string", "null"] }
	}
}`

var userRegistrationSchemaLoader = gojsonschema.NewStringLoader(
	userRegistrationSchema,
)

type usersEndpoints struct {
	*restmachinery.BaseEndpoints
	tokenAuthFilter              restmachinery.Filter
	userRegistrationSchemaLoader gojsonschema.JSONLoader
	service                      authx.UsersService
}

// NewUsersEndpoints returns restmachinery.Endpoints for registering Users and
// fetching the authenticated User.
func NewUsersEndpoints(
	tokenAuthFilter restmachinery.Filter,
	service authx.UsersService,
) restmachinery.Endpoints {
	return &usersEndpoints{
		BaseEndpoints:                &restmachinery.BaseEndpoints{},
		tokenAuthFilter:              tokenAuthFilter,
		userRegistrationSchemaLoader: userRegistrationSchemaLoader,
		service:                      service,
	}
}

func (u *usersEndpoints) Register(router *mux.Router) {
	// Register
	router.HandleFunc(
		"/users",
		u.create, // No filters applied to this request
	).Methods(http.MethodPost)

	// Get the authenticated user
	router.HandleFunc(
		"/users/me",
		u.tokenAuthFilter.Decorate(u.getMe),
	).Methods(http.MethodGet)
}

func (u *usersEndpoints) create(w http.ResponseWriter, r *http.Request) {
	registration := authx.UserRegistration{}
	u.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: u.userRegistrationSchemaLoader,
			ReqBodyObj:          &registration,
			EndpointLogic: func() (interface{}, error) {
				return u.service.Create(r.Context(), registration)
			},
			SuccessCode: http.StatusCreated,
		},
	)
}

func (u *usersEndpoints) getMe(w http.ResponseWriter, r *http.Request) {
	u.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				user, ok := authx.UserFromContext(r.Context())
				if !ok {
					return nil, &meta.ErrAuthentication{
						Reason: "No user attached to request.",
					}
				}
				return user, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}
