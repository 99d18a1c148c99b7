package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateMachineTransitions(t *testing.T) {
	s := &StateMachine{}
	require.Equal(t, Disconnected, s.State())

	require.True(t, s.BeginConnecting())
	require.Equal(t, Connecting, s.State())
	// Only one goroutine gets to own a connection attempt
	require.False(t, s.BeginConnecting())

	require.True(t, s.MarkConnected())
	require.Equal(t, Connected, s.State())
	require.False(t, s.MarkConnected())
	require.False(t, s.BeginConnecting())

	require.True(t, s.MarkDisconnected())
	require.Equal(t, Disconnected, s.State())
	require.False(t, s.MarkDisconnected())
}

func TestStateMachineConcurrentConnectAttempts(t *testing.T) {
	s := &StateMachine{}
	const attempts = 50
	wins := make(chan bool, attempts)
	wg := sync.WaitGroup{}
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- s.BeginConnecting()
		}()
	}
	wg.Wait()
	close(wins)
	var winners int
	for won := range wins {
		if won {
			winners++
		}
	}
	require.Equal(t, 1, winners)
}

func TestConnectionStateString(t *testing.T) {
	require.Equal(t, "Disconnected", Disconnected.String())
	require.Equal(t, "Connecting", Connecting.String())
	require.Equal(t, "Connected", Connected.String())
	require.Equal(t, "Unknown", ConnectionState(42).String())
}
