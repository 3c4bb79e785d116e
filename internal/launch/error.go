// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launch

import "errors"

// ErrNoExecutable is returned if no monitor executable is given.
var ErrNoExecutable = errors.New("no executable given")
