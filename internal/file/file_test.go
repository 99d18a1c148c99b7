package file

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir, err := ioutil.TempDir("", "file-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "foo")
	require.False(t, Exists(path))
	require.NoError(t, ioutil.WriteFile(path, []byte("bar"), 0644))
	require.True(t, Exists(path))
}
