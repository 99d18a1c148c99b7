package meta

import (
	"encoding/json"
	"fmt"
)

// errorBody is the JSON shape of every error the API returns to a client.
type errorBody struct {
	Error string `json:"error"`
}

// ErrAuthentication represents an error that occurs when a request could not
// be tied to a valid session. The reason is kept for logging only; clients
// always see the same message.
type ErrAuthentication struct {
	Reason string `json:"-"`
}

func (e *ErrAuthentication) Error() string {
	return "Unauthorized"
}

// MarshalJSON hides the reason from clients.
func (e *ErrAuthentication) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorBody{Error: e.Error()})
}

// ErrBadRequest represents an error that occurs when a request is invalid. The
// reason is always shown to the client verbatim.
type ErrBadRequest struct {
	Reason string
}

func (e *ErrBadRequest) Error() string {
	return e.Reason
}

func (e *ErrBadRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorBody{Error: e.Reason})
}

// ErrNotFound represents an error that occurs when a resource was expected to
// exist but does not.
type ErrNotFound struct {
	Type string
	ID   string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found.", e.Type, e.ID)
}

func (e *ErrNotFound) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorBody{Error: "Not found"})
}

// ErrConflict represents an error that occurs when a store refuses to persist
// a resource because it would violate a uniqueness constraint.
type ErrConflict struct {
	Type string
	ID   string
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("A %s with the ID %q already exists.", e.Type, e.ID)
}

func (e *ErrConflict) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorBody{Error: "Already exist"})
}

// ErrStoreUnavailable represents a connectivity failure while talking to a
// backing store. It is never shown to clients in any detail.
//
// It deliberately implements Unwrap, but not Cause, so that errors.Cause()
// from github.com/pkg/errors stops here when classifying an error chain.
type ErrStoreUnavailable struct {
	Store string
	Err   error
}

func (e *ErrStoreUnavailable) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s is unavailable", e.Store)
	}
	return fmt.Sprintf("%s is unavailable: %s", e.Store, e.Err)
}

func (e *ErrStoreUnavailable) Unwrap() error {
	return e.Err
}

func (e *ErrStoreUnavailable) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorBody{Error: internalServerErrorMessage})
}

// ErrQueueUnavailable represents a failure to submit a job to a named queue.
type ErrQueueUnavailable struct {
	Queue string
	Err   error
}

func (e *ErrQueueUnavailable) Error() string {
	return fmt.Sprintf("queue %q is unavailable: %s", e.Queue, e.Err)
}

func (e *ErrQueueUnavailable) Unwrap() error {
	return e.Err
}

const internalServerErrorMessage = "Internal Server Error"

// ErrInternalServer represents a condition wherein the server has failed in
// some way that should not be explained to the client.
type ErrInternalServer struct{}

func (e *ErrInternalServer) Error() string {
	return internalServerErrorMessage
}

func (e *ErrInternalServer) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorBody{Error: internalServerErrorMessage})
}

