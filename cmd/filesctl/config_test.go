package main

import (
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
)

func TestConfigLifecycle(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())

	_, err := getConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "filesctl login")

	cfg := &config{
		APIAddress: "http://localhost:8080",
		APIToken:   "031e1a7e-1c16-4a9c-9b37-2ed0c5f9d8a0",
	}
	require.NoError(t, saveConfig(cfg))

	loaded, err := getConfig()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	require.NoError(t, deleteConfig())
	_, err = getConfig()
	require.Error(t, err)

	// Deleting an absent config is not an error
	require.NoError(t, deleteConfig())
}
