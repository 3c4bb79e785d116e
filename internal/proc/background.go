// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package proc

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/aibor/vmlaunch/internal/pipe"
)

// drainTimeout is the time the output pipes have to reach EOF after the
// process terminated. Descendants of the process might still hold the write
// ends open.
const drainTimeout = time.Second

// Process is the handle of a process started with [Background].
//
// The [exec.Cmd] is owned by a supervising go routine that drains the output,
// waits for the termination and records the [Status]. The handle only
// observes it.
type Process struct {
	name   string
	pid    int
	done   chan struct{}
	status Status
	logger *slog.Logger
}

// Background starts the given command in the background.
//
// Stdout and stderr of the process are read line by line and logged with the
// given logger at debug level, so the process never blocks on full output
// buffers. Any stdout or stderr already set on the command is replaced. The
// termination of the process is logged as well.
//
// If the process can not be started, a [StartError] is returned.
func Background(cmd *exec.Cmd, logger *slog.Logger) (*Process, error) {
	name, args := cmd.Path, []string(nil)
	if len(cmd.Args) > 0 {
		name, args = cmd.Args[0], cmd.Args[1:]
	}

	stdoutReader, stdoutWriter, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	stderrReader, stderrWriter, err := os.Pipe()
	if err != nil {
		_ = stdoutReader.Close()
		_ = stdoutWriter.Close()

		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	err = cmd.Start()

	// The child has its own copies of the write ends now. Closing ours makes
	// the readers reach EOF once the child is gone.
	_ = stdoutWriter.Close()
	_ = stderrWriter.Close()

	if err != nil {
		_ = stdoutReader.Close()
		_ = stderrReader.Close()

		return nil, newStartError(cmd, err)
	}

	proc := &Process{
		name: name,
		pid:  cmd.Process.Pid,
		done: make(chan struct{}),
		logger: logger.With(
			slog.String("process", name),
			slog.Int("pid", cmd.Process.Pid),
		),
	}

	pipes := new(pipe.Pipes)

	for streamName, reader := range map[string]*os.File{
		"stdout": stdoutReader,
		"stderr": stderrReader,
	} {
		pipes.Run(&pipe.Pipe{
			Name:        streamName,
			InputReader: reader,
			InputCloser: reader,
			Output: &pipe.LogWriter{
				Logger: proc.logger,
				Level:  slog.LevelDebug,
				Msg:    "Process output",
				Attrs:  []slog.Attr{slog.String("stream", streamName)},
			},
			CopyFunc:    pipe.LineBuffered,
			MayBeSilent: true,
		})
	}

	proc.logger.Debug("Process started", slog.Any("args", args))

	go proc.supervise(cmd, pipes, stdoutReader, stderrReader)

	return proc, nil
}

func (p *Process) supervise(
	cmd *exec.Cmd,
	pipes *pipe.Pipes,
	readers ...*os.File,
) {
	defer close(p.done)

	waitErr := cmd.Wait()
	p.status = statusFrom(cmd.ProcessState, waitErr)

	err := pipes.Wait(drainTimeout)
	if err != nil {
		p.logger.Warn("Process output draining failed", slog.Any("error", err))
	}

	for _, reader := range readers {
		_ = reader.Close()
	}

	p.logger.Info("Process terminated",
		slog.Any("status", p.status),
		slog.Any("bytes", pipes.BytesWritten()),
	)
}

// Name returns the program name of the process.
func (p *Process) Name() string {
	return p.name
}

// PID returns the process ID.
func (p *Process) PID() int {
	return p.pid
}

// Done returns a channel that is closed once the process terminated and its
// output is drained.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Status returns the current [Status] of the process. It is [StateRunning]
// until the channel returned by [Process.Done] is closed.
func (p *Process) Status() Status {
	select {
	case <-p.done:
		return p.status
	default:
		return Status{State: StateRunning}
	}
}

// Wait waits for the process to terminate and returns its [Status].
//
// If the process does not terminate within the given timeout,
// [ErrWaitTimeout] is returned. The process is not killed in that case.
func (p *Process) Wait(timeout time.Duration) (Status, error) {
	select {
	case <-p.done:
		return p.status, nil
	case <-time.After(timeout):
		return Status{State: StateRunning}, ErrWaitTimeout
	}
}
