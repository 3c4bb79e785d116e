// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pipe provides the draining of output streams of child processes.
//
// Each stream is consumed by a [Pipe] that runs concurrently in a [Pipes]
// group, so a child never blocks on a full pipe buffer.
package pipe
