// Package lineedit is an interactive single-line editor for
// command-line programs: in-line editing with cursor motion,
// deletion, word operations and kill/yank, a bounded recall history
// persisted to disk, and user-configurable key bindings. It is meant
// to be embedded in a host program's read-eval-print loop.
//
// All editor state lives in an Editor handle constructed with New; the
// package keeps no default instance. A host normally creates one
// Editor for its terminal; tests or hosts driving several
// pseudo-terminals can construct independent handles.
package lineedit

import (
	"fmt"
	"os"

	"lineedit/internal/buffer"
	"lineedit/internal/history"
	"lineedit/internal/keyseq"
	"lineedit/internal/termio"
)

// current tags which backing store the visible line is a view of.
type currentView struct {
	viewingHistory bool
	index          int // valid only when viewingHistory
}

// Editor owns the buffer, clipboard, cursor and history for one
// read loop. The zero value is not usable; construct with New.
//
// The input terminal is put into raw mode on the first Read and is not
// restored between Reads, so host output between two Reads is written
// while the terminal is still in raw mode.
type Editor struct {
	buf       *buffer.Buffer
	clipboard []byte

	cursor    int
	fmtCursor int
	fmtLen    int

	view  currentView
	hist  *history.Store
	histFile string

	lastCommand CommandID
	fsm         *keyseq.FSM[CommandID]

	in      *os.File
	out     *os.File
	session termio.Session

	initialized bool

	exit             func(code int)
	abortOnTerminate bool
}

// Option configures an Editor at construction time.
type Option func(*Editor)

// WithIO directs the editor to read from in and write to out instead
// of the process's stdin/stdout. Both must be *os.File so the editor
// can query and restore terminal state.
func WithIO(in, out *os.File) Option {
	return func(e *Editor) {
		e.in = in
		e.out = out
	}
}

// WithAbortOnTerminate changes terminate and EOF-on-empty-buffer from
// the specified behavior (restore the terminal and exit the process)
// to instead unwind Read with an abort (ok=false) result, leaving the
// process and its terminal state to the host. See the design notes on
// terminal-state leakage and cancellation for why this is opt-in
// rather than the default.
func WithAbortOnTerminate() Option {
	return func(e *Editor) { e.abortOnTerminate = true }
}

// WithExitFunc overrides the function invoked to terminate the
// process (default os.Exit) when terminate fires without
// WithAbortOnTerminate. Intended for tests.
func WithExitFunc(fn func(code int)) Option {
	return func(e *Editor) { e.exit = fn }
}

// New constructs an Editor with no history and the default key
// bindings. Call SetHistory/SetHistoryWithFile and SetKeyBindings to
// configure it before the first Read, or keep what New installs:
// DefaultBindings and an in-memory history of capacity zero, which
// records nothing.
func New(opts ...Option) *Editor {
	e := &Editor{
		buf:  buffer.New(),
		hist: history.New(0),
		exit: os.Exit,
		in:   os.Stdin,
		out:  os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.fsm = keyseq.New(toKeyseqBindings(DefaultBindings()))
	return e
}

func toKeyseqBindings(bindings []Binding) []keyseq.Binding[CommandID] {
	out := make([]keyseq.Binding[CommandID], len(bindings))
	for i, b := range bindings {
		out[i] = keyseq.Binding[CommandID]{Sequence: b.Sequence, Command: b.Command}
	}
	return out
}

// SetHistory configures an in-memory recall ring with no file
// persistence, replacing any previously configured history.
func (e *Editor) SetHistory(maxLines int) {
	e.hist = history.New(maxLines)
	e.histFile = ""
}

// SetHistoryWithFile configures the recall ring and immediately loads
// any existing entries from path; entries are persisted to path on
// every accepted line thereafter.
func (e *Editor) SetHistoryWithFile(maxLines int, path string) error {
	e.hist = history.New(maxLines)
	e.histFile = path
	if err := e.hist.Read(path); err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	return nil
}

// SetKeyBindings installs bindings, replacing the current table.
func (e *Editor) SetKeyBindings(bindings []Binding) {
	e.fsm = keyseq.New(toKeyseqBindings(bindings))
}

// History exposes the configured history store for hosts that want to
// inspect or navigate it outside of an active Read (e.g. to implement
// a `history` command). The returned store is shared with the editor;
// callers must not mutate entries in place.
func (e *Editor) History() *history.Store {
	return e.hist
}

// currentBytes returns the bytes of whichever view ("current" in the
// spec) is presently shown: the in-progress buffer, or a history
// entry if the user has navigated away from it with
// previous-history/next-history.
func (e *Editor) currentBytes() []byte {
	if e.view.viewingHistory {
		return e.hist.Index(e.view.index)
	}
	return e.buf.Bytes()
}

// pop promotes a viewed history entry into the editable buffer before
// any mutation, so editing a recalled line never mutates history in
// place. It reports whether a pop actually happened.
func (e *Editor) pop() bool {
	if !e.view.viewingHistory {
		return false
	}
	e.buf.Assign(e.hist.Index(e.view.index))
	e.view = currentView{}
	return true
}

// Read displays prompt followed by a separating space, then runs the
// edit loop until a line is accepted or the session is aborted. The
// returned string is a copy and remains valid after the next Read.
// ok is false when the session was aborted (terminate / EOF on an
// empty buffer with WithAbortOnTerminate).
func (e *Editor) Read(prompt string) (line string, ok bool) {
	if !e.initialized {
		e.session = termio.New(e.in)
		if err := e.session.Enter(); err != nil {
			fmt.Fprintf(e.out, "lineedit: enter raw mode: %v\n", err)
			return "", false
		}
		e.initialized = true
	}

	e.buf.Assign(nil)
	e.view = currentView{}
	e.cursor = 0
	e.fmtCursor = 0
	e.fmtLen = 0
	e.lastCommand = CmdNone
	e.fsm.Reset()

	fmt.Fprint(e.out, prompt, " ")

	var result stepOutcome
	for {
		e.render()
		result = e.step()
		if result != stepContinue {
			break
		}
	}

	e.render()
	fmt.Fprint(e.out, "\n")

	if result == stepAbort {
		return "", false
	}
	return e.buf.String(), true
}

type stepOutcome int

const (
	stepContinue stepOutcome = iota
	stepAccept
	stepAbort
)

// window bounds the byte-accumulation loop; the default binding set's
// longest sequence is 4 bytes, ANSI CSI tails in general stay well
// under this.
const window = 8

// step reads bytes until the FSM resolves to a command or a dead end,
// then dispatches accordingly. It returns the outcome that should
// drive the Read loop.
func (e *Editor) step() stepOutcome {
	var buf [window]byte
	n := 0
	for {
		b, err := e.session.ReadByte()
		if err != nil {
			return stepAbort
		}
		if n < len(buf) {
			buf[n] = b
		}
		n++

		result, cmd := e.fsm.Feed(b)
		switch result {
		case keyseq.Inner:
			if n >= len(buf) {
				// Defensive cap: an oversized, unresolved sequence is
				// abandoned and treated as literal input rather than
				// grown without bound.
				e.insertLiteral(buf[:n])
				e.lastCommand = CmdNone
				e.fsm.Reset()
				return stepContinue
			}
			continue
		case keyseq.Final:
			return e.dispatch(cmd)
		default: // keyseq.None
			e.insertLiteral(buf[:n])
			e.lastCommand = CmdNone
			return stepContinue
		}
	}
}

func (e *Editor) dispatch(cmd CommandID) stepOutcome {
	if cmd == CmdTerminate {
		e.lastCommand = cmd
		return e.runTerminate()
	}

	fn, ok := commandTable[cmd]
	if !ok {
		e.bell()
		e.lastCommand = cmd
		return stepContinue
	}

	retval := fn(e)
	e.lastCommand = cmd

	if cmd == CmdEndOfFile && retval == eofTerminateSentinel {
		return e.runTerminate()
	}

	switch {
	case retval > 0:
		return stepAccept
	case retval < 0:
		e.bell()
		return stepContinue
	default:
		return stepContinue
	}
}

func (e *Editor) bell() {
	fmt.Fprint(e.out, "\a")
}

// insertLiteral is how ordinary printable bytes and multi-byte UTF-8
// codepoints enter the buffer: the FSM found no binding for them, so
// they are inserted at the cursor verbatim.
func (e *Editor) insertLiteral(p []byte) {
	e.pop()
	e.buf.Insert(e.cursor, p)
	e.cursor += len(p)
}
