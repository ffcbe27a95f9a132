// Package session manages a pane's child process lifecycle: spawn over
// anonymous pipes, non-blocking peek/read of output, best-effort stdin
// writes, and exit detection.
//
// Rather than a real non-blocking pipe peek (PeekNamedPipe on Windows),
// this package uses a reader-goroutine-plus-channel design: one
// goroutine per live child drains its stdout pipe into a buffered
// channel, and PollOutput drains whatever has already arrived without
// blocking.
package session

import (
	"bytes"
	"io"
	"os/exec"

	"github.com/go-errors/errors"
)

// State is the child-process lifecycle state.
type State int

const (
	Idle State = iota
	Running
)

// outputBufSize bounds how many pending output chunks can queue between
// ticks before the reader goroutine blocks feeding the channel.
const outputBufSize = 256

// Session pairs a pane with an optionally-Running child process and its
// I/O pipes.
type Session struct {
	state State
	cwd   string

	cmd        *exec.Cmd
	stdinWrite io.WriteCloser
	outputCh   chan []byte
	exitCh     chan error
	exited     bool
	exitErr    error
}

// New creates an Idle session with no child.
func New() *Session {
	return &Session{state: Idle}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// Cwd returns the session's current working directory.
func (s *Session) Cwd() string { return s.cwd }

// SetCwd updates the session's tracked working directory (used by the
// `goto` builtin and by new child spawns).
func (s *Session) SetCwd(cwd string) { s.cwd = cwd }

// Execute spawns command in cwd with inherited anonymous pipes for stdout
// and stdin. Fails if a child is already Running.
func (s *Session) Execute(command string, args []string, cwd string) error {
	if s.state == Running {
		return errors.Errorf("execute: a child is already running for this session")
	}

	cmd := exec.Command(command, args...)
	cmd.Dir = cwd

	stdinWrite, err := cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, 0)
	}
	stdoutRead, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, 0)
	}
	cmd.Stderr = cmd.Stdout // merge stderr into the same pipe the emulator reads

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, 0)
	}

	s.cmd = cmd
	s.stdinWrite = stdinWrite
	s.cwd = cwd
	s.outputCh = make(chan []byte, outputBufSize)
	s.exitCh = make(chan error, 1)
	s.exited = false
	s.exitErr = nil
	s.state = Running

	go pumpOutput(stdoutRead, s.outputCh)
	go func() {
		s.exitCh <- cmd.Wait()
	}()

	return nil
}

// pumpOutput drains r into ch in whatever chunks Read returns, until EOF.
func pumpOutput(r io.Reader, ch chan<- []byte) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			ch <- chunk
		}
		if err != nil {
			return
		}
	}
}

// PollOutput returns whatever output has already arrived, without
// blocking. Returns nil if nothing is pending.
func (s *Session) PollOutput() []byte {
	if s.outputCh == nil {
		return nil
	}
	var out bytes.Buffer
	for {
		select {
		case chunk, ok := <-s.outputCh:
			if !ok {
				return out.Bytes()
			}
			out.Write(chunk)
		default:
			if out.Len() == 0 {
				return nil
			}
			return out.Bytes()
		}
	}
}

// WriteInput makes a best-effort, non-blocking write of data to the
// child's stdin. Errors are swallowed: a dead child's stdin pipe is not
// the caller's problem once isBusy() observes the exit.
func (s *Session) WriteInput(data []byte) {
	if s.state != Running || s.stdinWrite == nil {
		return
	}
	_, _ = s.stdinWrite.Write(data)
}

// IsBusy reports whether the child is still Running, transitioning to
// Idle and releasing handles the first time it observes the child has
// exited.
func (s *Session) IsBusy() bool {
	if s.state != Running {
		return false
	}
	if s.exited {
		s.release()
		return false
	}
	select {
	case err := <-s.exitCh:
		s.exited = true
		s.exitErr = err
		s.release()
		return false
	default:
		return true
	}
}

// ExitErr returns the error observed from the child's Wait(), valid only
// after IsBusy() has returned false following a Running session.
func (s *Session) ExitErr() error { return s.exitErr }

// release closes pipe handles and transitions to Idle. Called from
// IsBusy's exit observation and from Close; a second call is a no-op.
func (s *Session) release() {
	if s.stdinWrite != nil {
		_ = s.stdinWrite.Close()
		s.stdinWrite = nil
	}
	s.state = Idle
}

// Close forcibly terminates a Running child (if any) and releases
// handles. Used on pane destruction and on shutdown, where the
// coordinator calls Interrupt on every pane first, then Close.
func (s *Session) Close() {
	if s.cmd != nil && s.cmd.Process != nil && s.state == Running {
		_ = s.cmd.Process.Kill()
	}
	s.release()
}
