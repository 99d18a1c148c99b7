package restmachinery

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// Endpoints is an interface to be implemented by all REST API endpoints.
type Endpoints interface {
	// Register is invoked in support of route registration.
	Register(router *mux.Router)
}

// BaseEndpoints provides common functionality to all endpoint
// implementations.
type BaseEndpoints struct{}

// InboundRequest is a struct that represents all the details of an API
// request, including the logic to execute when serving it.
type InboundRequest struct {
	W                   http.ResponseWriter
	R                   *http.Request
	ReqBodySchemaLoader gojsonschema.JSONLoader
	ReqBodyObj          interface{}
	EndpointLogic       func() (interface{}, error)
	SuccessCode         int
}

func (b *BaseEndpoints) readAndValidateRequestBody(
	w http.ResponseWriter,
	r *http.Request,
	bodySchemaLoader gojsonschema.JSONLoader,
	bodyObj interface{},
) bool {
	defer r.Body.Close()
	bodyBytes, err := ioutil.ReadAll(r.Body)
	if err != nil {
		// Log it in case something is actually wrong...
		glog.Error(errors.Wrap(err, "error reading request body"))
		// But we're going to assume this is because the request body is missing,
		// so we'll treat it as a bad request.
		WriteAPIResponse(
			w,
			http.StatusBadRequest,
			&meta.ErrBadRequest{Reason: "Could not read request body."},
		)
		return false
	}
	// An empty body is treated as an empty object so that required fields are
	// reported individually.
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		bodyBytes = []byte("{}")
	}
	if bodySchemaLoader != nil {
		var validationResult *gojsonschema.Result
		validationResult, err = gojsonschema.Validate(
			bodySchemaLoader,
			gojsonschema.NewBytesLoader(bodyBytes),
		)
		if err != nil {
			// Most likely the request body wasn't valid JSON.
			WriteAPIResponse(
				w,
				http.StatusBadRequest,
				&meta.ErrBadRequest{Reason: "Could not validate request body."},
			)
			return false
		}
		if !validationResult.Valid() {
			WriteAPIResponse(
				w,
				http.StatusBadRequest,
				&meta.ErrBadRequest{
					Reason: validationResult.Errors()[0].String(),
				},
			)
			return false
		}
	}
	if bodyObj != nil {
		if err = json.Unmarshal(bodyBytes, bodyObj); err != nil {
			if bodySchemaLoader == nil {
				WriteAPIResponse(
					w,
					http.StatusBadRequest,
					&meta.ErrBadRequest{Reason: "Could not parse request body."},
				)
				return false
			}
			// The body already passed validation, so this is a real internal
			// problem.
			glog.Error(errors.Wrap(err, "error unmarshaling request body"))
			WriteAPIResponse(
				w,
				http.StatusInternalServerError,
				&meta.ErrInternalServer{},
			)
			return false
		}
	}
	return true
}

// ServeRequest serves an API request.
func (b *BaseEndpoints) ServeRequest(req InboundRequest) {
	if req.ReqBodySchemaLoader != nil || req.ReqBodyObj != nil {
		if !b.readAndValidateRequestBody(
			req.W,
			req.R,
			req.ReqBodySchemaLoader,
			req.ReqBodyObj,
		) {
			return
		}
	}
	respBodyObj, err := req.EndpointLogic()
	if err != nil {
		WriteError(req.W, err)
		return
	}
	WriteAPIResponse(req.W, req.SuccessCode, respBodyObj)
}

// WriteError classifies the given error and writes the corresponding error
// response. Anything that isn't one of the well-known error types from the
// meta package is logged and hidden behind a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	switch e := errors.Cause(err).(type) {
	case *meta.ErrAuthentication:
		WriteAPIResponse(w, http.StatusUnauthorized, e)
	case *meta.ErrBadRequest:
		WriteAPIResponse(w, http.StatusBadRequest, e)
	case *meta.ErrNotFound:
		WriteAPIResponse(w, http.StatusNotFound, e)
	case *meta.ErrConflict:
		WriteAPIResponse(w, http.StatusConflict, e)
	case *meta.ErrStoreUnavailable:
		glog.Errorf("%s store unavailable: %s", e.Store, err)
		WriteAPIResponse(w, http.StatusInternalServerError, e)
	case *meta.ErrInternalServer:
		WriteAPIResponse(w, http.StatusInternalServerError, e)
	default:
		glog.Error(err)
		WriteAPIResponse(
			w,
			http.StatusInternalServerError,
			&meta.ErrInternalServer{},
		)
	}
}

// WriteAPIResponse writes the given status code and JSON-encoded response
// body. A 204 carries no body at all.
func WriteAPIResponse(
	w http.ResponseWriter,
	statusCode int,
	response interface{},
) {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	responseBody, ok := response.([]byte)
	if !ok {
		var err error
		if responseBody, err = json.Marshal(response); err != nil {
			glog.Error(errors.Wrap(err, "error marshaling response body"))
		}
	}
	if _, err := w.Write(responseBody); err != nil {
		glog.Error(errors.Wrap(err, "error writing response body"))
	}
}
