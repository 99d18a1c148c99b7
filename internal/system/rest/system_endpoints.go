package rest

import (
	"net/http"

	"github.com/filesmanager/filesmanager/internal/restmachinery"
	"github.com/filesmanager/filesmanager/internal/system"
	"github.com/gorilla/mux"
)

type systemEndpoints struct {
	*restmachinery.BaseEndpoints
	service system.Service
}

// NewSystemEndpoints returns restmachinery.Endpoints for system status and
// statistics.
func NewSystemEndpoints(service system.Service) restmachinery.Endpoints {
	return &systemEndpoints{
		BaseEndpoints: &restmachinery.BaseEndpoints{},
		service:       service,
	}
}

func (s *systemEndpoints) Register(router *mux.Router) {
	// Backing store liveness
	router.HandleFunc("/status", s.status).Methods(http.MethodGet)

	// Record counts
	router.HandleFunc("/stats", s.stats).Methods(http.MethodGet)
}

func (s *systemEndpoints) status(w http.ResponseWriter, r *http.Request) {
	s.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return s.service.Status(r.Context())
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (s *systemEndpoints) stats(w http.ResponseWriter, r *http.Request) {
	s.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return s.service.Stats(r.Context())
			},
			SuccessCode: http.StatusOK,
		},
	)
}
