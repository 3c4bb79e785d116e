// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
)

// ErrDisplayModeInvalid is returned if a display mode is invalid.
var ErrDisplayModeInvalid = errors.New("unknown display mode")
