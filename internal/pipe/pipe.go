// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe

import (
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pipe copies the data of a single stream from its input into its output.
type Pipe struct {
	// Name is used for identifying the pipe in errors.
	Name string

	// InputReader is read until EOF or an error occurs.
	InputReader io.Reader

	// InputCloser is closed if the pipe does not terminate in time.
	InputCloser io.Closer

	// Output receives the data copied by CopyFunc.
	Output io.Writer

	// CopyFunc is the function used for copying the data.
	CopyFunc CopyFunc

	// MayBeSilent disables the [ErrNoOutput] error if nothing was written.
	MayBeSilent bool

	bytesWritten atomic.Int64
}

func (p *Pipe) run() error {
	n, err := p.CopyFunc(p.Output, p.InputReader)

	p.bytesWritten.Store(n)

	if err != nil {
		return &Error{Name: p.Name, Err: err}
	}

	if n == 0 && !p.MayBeSilent {
		return &Error{Name: p.Name, Err: ErrNoOutput}
	}

	return nil
}

// Pipes is a group of concurrently running [Pipe]s.
//
// The zero value is ready to use.
type Pipes struct {
	pipes []*Pipe
	group errgroup.Group
}

// Run starts the given [Pipe] in its own go routine.
func (p *Pipes) Run(pipe *Pipe) {
	p.pipes = append(p.pipes, pipe)
	p.group.Go(pipe.run)
}

// Len returns the number of [Pipe]s in the group.
func (p *Pipes) Len() int {
	return len(p.pipes)
}

// Wait waits for all [Pipe]s to terminate and returns the first error that
// occurred.
//
// If the pipes do not terminate within the given timeout, the inputs of all
// pipes are closed and [ErrWaitTimeout] is returned.
func (p *Pipes) Wait(timeout time.Duration) error {
	done := make(chan error, 1)

	go func() {
		done <- p.group.Wait()
	}()

	select {
	case err := <-done:
		return err //nolint:wrapcheck
	case <-time.After(timeout):
		for _, pipe := range p.pipes {
			_ = pipe.InputCloser.Close()
		}

		return ErrWaitTimeout
	}
}

// BytesWritten returns the number of bytes written to the output by each
// [Pipe] identified by its name.
func (p *Pipes) BytesWritten() map[string]int64 {
	written := make(map[string]int64, len(p.pipes))

	for _, pipe := range p.pipes {
		written[pipe.Name] = pipe.bytesWritten.Load()
	}

	return written
}
