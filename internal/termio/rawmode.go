// Package termio provides the raw-mode session abstraction the editor
// reads keystrokes through: enter raw mode, read one byte at a time,
// and restore the terminal's prior settings on close. On a platform
// (or a non-terminal stdin, e.g. when piped) where there is no
// termios-style raw mode to enter, Session degrades to plain buffered
// byte reads with no mode transition.
package termio

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Session is the abstract terminal the editor reads from. Enter puts
// the terminal in raw mode (if it is one); ReadByte blocks until a
// byte is available; Close restores whatever Enter changed.
type Session interface {
	Enter() error
	ReadByte() (byte, error)
	Close() error
}

// terminalSession wraps an *os.File that is a real TTY.
type terminalSession struct {
	fd    int
	f     *os.File
	rd    *bufio.Reader
	saved *term.State
}

// plainSession is used when stdin is not a terminal (piped input, a
// test harness feeding bytes through a pipe, etc). There is nothing to
// enter or restore; reads are plain blocking reads.
type plainSession struct {
	rd *bufio.Reader
}

// New builds a Session over f. When f is a terminal it will be put
// into raw mode on Enter; otherwise reads fall back to plain
// buffered I/O with no mode transition, matching the "platforms
// lacking POSIX termios" fallback.
func New(f *os.File) Session {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return &terminalSession{fd: int(f.Fd()), f: f}
	}
	return &plainSession{rd: bufio.NewReader(f)}
}

func (s *terminalSession) Enter() error {
	saved, err := term.MakeRaw(s.fd)
	if err != nil {
		return err
	}
	s.saved = saved
	s.rd = bufio.NewReader(s.f)
	return nil
}

// ReadByte blocks until a byte is available, retrying on the
// transient empty reads a short read-timeout raw mode can produce.
func (s *terminalSession) ReadByte() (byte, error) {
	for {
		b, err := s.rd.ReadByte()
		if err == nil {
			return b, nil
		}
		if err == io.EOF {
			continue
		}
		return 0, err
	}
}

func (s *terminalSession) Close() error {
	if s.saved == nil {
		return nil
	}
	err := term.Restore(s.fd, s.saved)
	s.saved = nil
	return err
}

func (s *plainSession) Enter() error { return nil }

func (s *plainSession) ReadByte() (byte, error) {
	return s.rd.ReadByte()
}

func (s *plainSession) Close() error { return nil }
