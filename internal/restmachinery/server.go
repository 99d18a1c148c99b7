package restmachinery

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/filesmanager/filesmanager/internal/file"
	"github.com/filesmanager/filesmanager/internal/metrics"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const shutdownTimeout = 10 * time.Second

// Server is an interface for the component that responds to HTTP API requests
type Server interface {
	// ListenAndServe causes the API server to start serving HTTP requests. It
	// blocks until the context is canceled or an error occurs. Cancellation
	// triggers a graceful shutdown and is not considered an error.
	ListenAndServe(ctx context.Context) error
}

type server struct {
	*BaseEndpoints // The server itself exposes health check endpoints
	config         Config
	handler        http.Handler
}

// NewServer returns a REST API server
func NewServer(config Config, endpoints []Endpoints) Server {
	router := mux.NewRouter()
	router.StrictSlash(true)
	router.Use(metrics.Instrument)

	for _, eps := range endpoints {
		eps.Register(router)
	}

	s := &server{
		BaseEndpoints: &BaseEndpoints{},
		config:        config,
		handler: cors.New(
			cors.Options{
				AllowedOrigins: config.CORSAllowedOrigins(),
				AllowedMethods: []string{"DELETE", "GET", "POST", "PUT"},
				AllowedHeaders: []string{"Authorization", "Content-Type", "X-Token"},
			},
		).Handler(router),
	}

	// Health check
	router.HandleFunc(
		"/healthz",
		s.checkHealth, // No filters applied to this request
	).Methods(http.MethodGet)

	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return s
}

func (s *server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", s.config.Port()),
	}

	errCh := make(chan error, 1)
	go func() {
		if s.config.TLSEnabled() &&
			file.Exists(s.config.TLSCertPath()) &&
			file.Exists(s.config.TLSKeyPath()) {
			glog.Infof(
				"API server is listening with TLS enabled on 0.0.0.0:%d",
				s.config.Port(),
			)
			srv.Handler = s.handler
			errCh <- srv.ListenAndServeTLS(
				s.config.TLSCertPath(),
				s.config.TLSKeyPath(),
			)
			return
		}
		glog.Infof(
			"API server is listening without TLS on 0.0.0.0:%d",
			s.config.Port(),
		)
		srv.Handler = h2c.NewHandler(s.handler, &http2.Server{})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "error serving API requests")
	case <-ctx.Done():
	}

	glog.Info("API server is shutting down")
	shutdownCtx, cancel :=
		context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "error shutting down API server")
	}
	return nil
}

func (s *server) checkHealth(w http.ResponseWriter, r *http.Request) {
	s.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return struct{}{}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}
