// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package proc provides the primitives for running external programs either
// in the background with their output drained into a logger or in the
// foreground attached to the caller's standard streams.
package proc
