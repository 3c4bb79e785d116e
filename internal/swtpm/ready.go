// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package swtpm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

const pollInterval = 20 * time.Millisecond

// WaitReady waits until a unix socket exists at the given path.
//
// Any socket at the path counts, so a stale one must be removed before the
// emulator is started, as [Emulator.Start] does.
//
// It returns [ErrNotReady] if the socket does not show up within the given
// timeout or the context is done. It returns [ErrTerminated] if the
// terminated channel is closed first. A nil channel is never closed.
func WaitReady(
	ctx context.Context,
	socketPath string,
	terminated <-chan struct{},
	timeout time.Duration,
) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if isSocket(socketPath) {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %w", ErrNotReady, socketPath, ctx.Err())
		case <-terminated:
			return fmt.Errorf("%w: %s", ErrTerminated, socketPath)
		case <-ticker.C:
		}
	}
}

func isSocket(path string) bool {
	var stat unix.Stat_t

	err := unix.Stat(path, &stat)
	if err != nil {
		return false
	}

	return stat.Mode&unix.S_IFMT == unix.S_IFSOCK
}
