// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"
)

var errAlreadyRunning = errors.New("another stpod instance is already running")

// instanceLockPath is per user, in the runtime dir when there is one.
func instanceLockPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, fmt.Sprintf("stpod-%d.lock", os.Getuid()))
}

// acquireInstanceLock keeps a second player from fighting over the audio
// device and the MPRIS bus name.
func acquireInstanceLock(path string) (release func(), err error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, errors.Wrap(err, "acquire lock")
	}
	if !ok {
		return nil, errAlreadyRunning
	}
	return func() {
		_ = lock.Unlock()
	}, nil
}
