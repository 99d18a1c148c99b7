package kv

import "sync/atomic"

// ConnectionState is the state of a store's connection.
type ConnectionState int32

const (
	// Disconnected means the last thing we heard from the store was a failure,
	// or we have never tried to reach it.
	Disconnected ConnectionState = iota
	// Connecting means an attempt to (re)establish the connection is underway.
	Connecting
	// Connected means the last thing we heard from the store was a success.
	Connected
)

func (c ConnectionState) String() string {
	switch c {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	}
	return "Unknown"
}

// StateMachine tracks a ConnectionState that may be read and transitioned
// from many goroutines at once. The zero value is Disconnected.
type StateMachine struct {
	state int32
}

// State returns the current state.
func (s *StateMachine) State() ConnectionState {
	return ConnectionState(atomic.LoadInt32(&s.state))
}

// BeginConnecting moves Disconnected to Connecting. It returns false if the
// machine was in any other state, in which case another goroutine already
// owns the attempt or the connection is already up.
func (s *StateMachine) BeginConnecting() bool {
	return atomic.CompareAndSwapInt32(
		&s.state,
		int32(Disconnected),
		int32(Connecting),
	)
}

// MarkConnected records a successful exchange with the store. It returns true
// if this changed the state.
func (s *StateMachine) MarkConnected() bool {
	return ConnectionState(
		atomic.SwapInt32(&s.state, int32(Connected)),
	) != Connected
}

// MarkDisconnected records a failed exchange with the store. It returns true
// if this changed the state.
func (s *StateMachine) MarkDisconnected() bool {
	return ConnectionState(
		atomic.SwapInt32(&s.state, int32(Disconnected)),
	) != Disconnected
}
