// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe

import (
	"context"
	"log/slog"
	"strings"
)

// LogWriter is an [io.Writer] that emits a log record for each write.
//
// It is supposed to be fed by [LineBuffered], so each record carries a single
// line of output in the "line" attribute.
type LogWriter struct {
	Logger *slog.Logger
	Level  slog.Level
	Msg    string
	Attrs  []slog.Attr
}

// Write implements [io.Writer].
func (w *LogWriter) Write(data []byte) (int, error) {
	line := strings.TrimRight(string(data), "\r\n")

	attrs := make([]slog.Attr, 0, len(w.Attrs)+1)
	attrs = append(attrs, w.Attrs...)
	attrs = append(attrs, slog.String("line", line))

	w.Logger.LogAttrs(context.Background(), w.Level, w.Msg, attrs...)

	return len(data), nil
}
