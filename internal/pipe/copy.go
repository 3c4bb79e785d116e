// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// MaxLineLength is the maximum length of a line [LineBuffered] accepts.
const MaxLineLength = 1 << 20

// CopyFunc defines a function that reads the data from the given reader into
// the given writer.
//
// It may copy the data as is, like [io.Copy], or mutate or filter it as needed.
type CopyFunc func(dst io.Writer, src io.Reader) (int64, error)

var _ CopyFunc = io.Copy

var _ CopyFunc = LineBuffered

// LineBuffered is a [CopyFunc] that copies the data line by line. Empty lines
// are dropped and carriage returns are removed.
//
// This function should be used if the output is consumed line based, e.g. by
// a [LogWriter].
//
// If a line exceeds [MaxLineLength], the rest of the input is discarded until
// EOF, so the writing process never blocks, and [bufio.ErrTooLong] is
// returned.
func LineBuffered(dst io.Writer, src io.Reader) (int64, error) {
	var written int64

	scanner := bufio.NewScanner(src)
	scanner.Buffer(nil, MaxLineLength)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 0 {
			n, err := fmt.Fprintln(dst, line)

			written += int64(n)

			if err != nil {
				return written, fmt.Errorf("write: %w", err)
			}
		}
	}

	err := scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		_, _ = io.Copy(io.Discard, src)
	}

	if err != nil {
		return written, fmt.Errorf("scan: %w", err)
	}

	return written, nil
}
