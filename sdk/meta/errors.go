package meta

// ErrAuthentication represents an error returned when a request could not be
// tied to a valid session, or when login credentials were rejected.
type ErrAuthentication struct {
	Reason string `json:"error"`
}

func (e *ErrAuthentication) Error() string {
	return e.Reason
}

// ErrBadRequest represents an error returned when a request was rejected as
// invalid. Reason says precisely why.
type ErrBadRequest struct {
	Reason string `json:"error"`
}

func (e *ErrBadRequest) Error() string {
	return e.Reason
}

// ErrNotFound represents an error returned when a requested resource does not
// exist.
type ErrNotFound struct {
	Reason string `json:"error"`
}

func (e *ErrNotFound) Error() string {
	return e.Reason
}

// ErrConflict represents an error returned when a resource could not be
// created because it would collide with an existing one.
type ErrConflict struct {
	Reason string `json:"error"`
}

func (e *ErrConflict) Error() string {
	return e.Reason
}

// ErrInternalServer represents an error returned when the server failed in
// some way it does not explain to clients.
type ErrInternalServer struct {
	Reason string `json:"error"`
}

func (e *ErrInternalServer) Error() string {
	return e.Reason
}
