// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aibor/vmlaunch/internal/pipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWriter(t *testing.T) {
	var output bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&output, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return attr
		},
	}))

	writer := &pipe.LogWriter{
		Logger: logger,
		Level:  slog.LevelDebug,
		Msg:    "output",
		Attrs:  []slog.Attr{slog.String("stream", "stderr")},
	}

	n, err := pipe.LineBuffered(writer, strings.NewReader("first\nsecond line\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(18), n)

	expected := `level=DEBUG msg=output stream=stderr line=first` + "\n" +
		`level=DEBUG msg=output stream=stderr line="second line"` + "\n"
	assert.Equal(t, expected, output.String())
}
