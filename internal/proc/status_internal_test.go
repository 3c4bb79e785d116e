// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package proc

import (
	"log/slog"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFrom_WaitError(t *testing.T) {
	status := statusFrom(nil, assert.AnError)

	assert.Equal(t, StateFailed, status.State)
	assert.Equal(t, -1, status.Code)
	assert.ErrorIs(t, status.Err, assert.AnError)
}

func TestStatus_LogValue(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected []slog.Attr
	}{
		{
			name:   "running",
			status: Status{State: StateRunning},
			expected: []slog.Attr{
				slog.String("state", "running"),
			},
		},
		{
			name:   "exited",
			status: Status{State: StateExited, Code: 2},
			expected: []slog.Attr{
				slog.String("state", "exited"),
				slog.Int("code", 2),
			},
		},
		{
			name:   "signaled",
			status: Status{State: StateSignaled, Signal: syscall.SIGKILL},
			expected: []slog.Attr{
				slog.String("state", "signaled"),
				slog.String("signal", "killed"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.LogValue().Group())
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown(42)", State(42).String())
}
