package rest

import (
	"net/http"

	"github.com/filesmanager/filesmanager/internal/authx"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/filesmanager/filesmanager/internal/restmachinery"
	"github.com/filesmanager/filesmanager/internal/restmachinery/authn"
	"github.com/gorilla/mux"
)

type sessionsEndpoints struct {
	*restmachinery.BaseEndpoints
	service authx.SessionsService
}

// NewSessionsEndpoints returns restmachinery.Endpoints for logging in and
// logging out.
func NewSessionsEndpoints(
	service authx.SessionsService,
) restmachinery.Endpoints {
	return &sessionsEndpoints{
		BaseEndpoints: &restmachinery.BaseEndpoints{},
		service:       service,
	}
}

func (s *sessionsEndpoints) Register(router *mux.Router) {
	// Log in
	router.HandleFunc(
		"/connect",
		s.connect, // No filters applied to this request
	).Methods(http.MethodGet)

	// Log out
	router.HandleFunc(
		"/disconnect",
		s.disconnect, // No filters applied to this request
	).Methods(http.MethodGet)
}

func (s *sessionsEndpoints) connect(w http.ResponseWriter, r *http.Request) {
	s.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				email, password, ok := r.BasicAuth()
				if !ok {
					return nil, &meta.ErrAuthentication{
						Reason: `"Authorization" header is missing or malformed.`,
					}
				}
				return s.service.Login(r.Context(), email, password)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

// disconnect succeeds whether or not the token identifies a live session.
func (s *sessionsEndpoints) disconnect(
	w http.ResponseWriter,
	r *http.Request,
) {
	s.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				token := r.Header.Get(authn.TokenHeader)
				if token == "" {
					return nil, nil
				}
				return nil, s.service.Revoke(r.Context(), token)
			},
			SuccessCode: http.StatusNoContent,
		},
	)
}
