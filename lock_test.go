package main

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireInstanceLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stpod.lock")

	release, err := acquireInstanceLock(path)
	require.NoError(t, err)

	_, err = acquireInstanceLock(path)
	assert.True(t, errors.Is(err, errAlreadyRunning))

	release()

	release, err = acquireInstanceLock(path)
	require.NoError(t, err)
	release()
}

func TestInstanceLockPath(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/run/user/1000", filepath.Dir(instanceLockPath()))
	assert.Contains(t, filepath.Base(instanceLockPath()), "stpod-")
}
