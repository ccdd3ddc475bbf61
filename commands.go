package lineedit

import "unicode/utf8"

// commandFunc implements one editing command. Its return value
// follows the dispatch contract: 0 continues editing, >0 accepts the
// line, <0 refuses (the caller rings the bell and leaves state
// unchanged). Terminate is dispatched outside this table because its
// effect (unwind or exit) is not expressible as a return value.
type commandFunc func(e *Editor) int

var commandTable = map[CommandID]commandFunc{
	CmdBeginningOfLine:    cmdBeginningOfLine,
	CmdEndOfLine:          cmdEndOfLine,
	CmdBackwardChar:       cmdBackwardChar,
	CmdForwardChar:        cmdForwardChar,
	CmdBackwardWord:       cmdBackwardWord,
	CmdForwardWord:        cmdForwardWord,
	CmdDeleteChar:         cmdDeleteChar,
	CmdBackwardDeleteChar: cmdBackwardDeleteChar,
	CmdForwardKillLine:    cmdForwardKillLine,
	CmdBackwardKillLine:   cmdBackwardKillLine,
	CmdForwardKillWord:    cmdForwardKillWord,
	CmdBackwardKillWord:   cmdBackwardKillWord,
	CmdYank:               cmdYank,
	CmdVerbatim:           cmdVerbatim,
	CmdPreviousHistory:    cmdPreviousHistory,
	CmdNextHistory:        cmdNextHistory,
	CmdBeginningOfHistory: cmdBeginningOfHistory,
	CmdEndOfHistory:       cmdEndOfHistory,
	CmdAcceptLine:         cmdAcceptLine,
	CmdEndOfFile:          cmdEndOfFile,
}

func cmdBeginningOfLine(e *Editor) int {
	e.cursor = 0
	return 0
}

func cmdEndOfLine(e *Editor) int {
	e.cursor = len(e.currentBytes())
	return 0
}

func cmdBackwardChar(e *Editor) int {
	if e.cursor == 0 {
		return -1
	}
	_, size := utf8.DecodeLastRune(e.currentBytes()[:e.cursor])
	e.cursor -= size
	return 0
}

func cmdForwardChar(e *Editor) int {
	b := e.currentBytes()
	if e.cursor >= len(b) {
		return -1
	}
	_, size := utf8.DecodeRune(b[e.cursor:])
	e.cursor += size
	return 0
}

// cmdBackwardWord scans backward over any trailing non-word bytes,
// then over the word itself, and stops: two phases. It intentionally
// does not skip a run of non-word bytes that immediately precedes the
// cursor beyond the one scan, which is why its notion of a word
// boundary is not the exact mirror of forward-word's three phases.
func cmdBackwardWord(e *Editor) int {
	b := e.currentBytes()
	i := e.cursor
	for i > 0 && !isWordByte(b[i-1]) {
		i--
	}
	for i > 0 && isWordByte(b[i-1]) {
		i--
	}
	e.cursor = i
	return 0
}

// cmdForwardWord runs three phases: skip leading non-word bytes, skip
// the word itself, then skip the non-word bytes that follow it. This
// is the three-phase counterpart to backward-word's two phases; the
// asymmetry is original to this command set, not a defect to be
// silently fixed.
func cmdForwardWord(e *Editor) int {
	b := e.currentBytes()
	i := e.cursor
	n := len(b)
	for i < n && !isWordByte(b[i]) {
		i++
	}
	for i < n && isWordByte(b[i]) {
		i++
	}
	for i < n && !isWordByte(b[i]) {
		i++
	}
	e.cursor = i
	return 0
}

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	default:
		return false // punctuation, controls and every non-ASCII byte
	}
}

func cmdDeleteChar(e *Editor) int {
	b := e.currentBytes()
	if e.cursor >= len(b) {
		return -1
	}
	_, size := utf8.DecodeRune(b[e.cursor:])
	e.pop()
	e.buf.Erase(e.cursor, size)
	return 0
}

func cmdBackwardDeleteChar(e *Editor) int {
	b := e.currentBytes()
	if e.cursor == 0 {
		return -1
	}
	_, size := utf8.DecodeLastRune(b[:e.cursor])
	e.pop()
	e.buf.Erase(e.cursor-size, size)
	e.cursor -= size
	return 0
}

func cmdForwardKillLine(e *Editor) int {
	b := e.currentBytes()
	if e.cursor >= len(b) {
		return -1
	}
	killed := append([]byte(nil), b[e.cursor:]...)
	e.pop()
	e.buf.Erase(e.cursor, len(killed))
	e.clipboard = killed
	return 0
}

func cmdBackwardKillLine(e *Editor) int {
	if e.cursor == 0 {
		return -1
	}
	b := e.currentBytes()
	killed := append([]byte(nil), b[:e.cursor]...)
	e.pop()
	e.buf.Erase(0, len(killed))
	e.cursor = 0
	e.clipboard = killed
	return 0
}

// cmdForwardKillWord kills from the cursor to the end of the next
// word (the non-word bytes after that word are left in place) and,
// when the previous command was also forward-kill-word, appends to the
// clipboard instead of replacing it so a run of kill-word presses
// accumulates one contiguous yankable span.
func cmdForwardKillWord(e *Editor) int {
	b := e.currentBytes()
	start := e.cursor
	end := wordForwardExtent(b, start)
	if end == start {
		return -1
	}
	killed := append([]byte(nil), b[start:end]...)
	e.pop()
	e.buf.Erase(start, len(killed))

	if e.lastCommand == CmdForwardKillWord {
		e.clipboard = append(e.clipboard, killed...)
	} else {
		e.clipboard = killed
	}
	return 0
}

func cmdBackwardKillWord(e *Editor) int {
	b := e.currentBytes()
	end := e.cursor
	start := wordBackwardExtent(b, end)
	if start == end {
		return -1
	}
	killed := append([]byte(nil), b[start:end]...)
	e.pop()
	e.buf.Erase(start, len(killed))
	e.cursor = start

	if e.lastCommand == CmdBackwardKillWord {
		e.clipboard = append(append([]byte(nil), killed...), e.clipboard...)
	} else {
		e.clipboard = killed
	}
	return 0
}

// wordForwardExtent runs the first two phases of cmdForwardWord's scan
// (skip non-word bytes, then the word) and returns the resulting
// offset, so a forward kill ends at the end of the word rather than at
// the start of the following one.
func wordForwardExtent(b []byte, i int) int {
	n := len(b)
	for i < n && !isWordByte(b[i]) {
		i++
	}
	for i < n && isWordByte(b[i]) {
		i++
	}
	return i
}

// wordBackwardExtent mirrors cmdBackwardWord's two-phase scan.
func wordBackwardExtent(b []byte, i int) int {
	for i > 0 && !isWordByte(b[i-1]) {
		i--
	}
	for i > 0 && isWordByte(b[i-1]) {
		i--
	}
	return i
}

// cmdYank inserts a copy of the clipboard at the cursor and leaves the
// clipboard itself untouched, so repeated yanks re-insert the same
// text.
func cmdYank(e *Editor) int {
	if len(e.clipboard) == 0 {
		return -1
	}
	e.pop()
	e.buf.Insert(e.cursor, e.clipboard)
	e.cursor += len(e.clipboard)
	return 0
}

// cmdVerbatim reads exactly one more byte from the session and
// inserts it without interpretation, letting a user type a literal
// control character that would otherwise be bound to a command.
func cmdVerbatim(e *Editor) int {
	b, err := e.session.ReadByte()
	if err != nil {
		return -1
	}
	e.pop()
	e.buf.InsertByte(e.cursor, b)
	e.cursor++
	return 0
}

func cmdPreviousHistory(e *Editor) int {
	if e.hist.Size() == 0 {
		return -1
	}
	idx := e.hist.Size() - 1
	if e.view.viewingHistory {
		if e.view.index == 0 {
			return -1
		}
		idx = e.view.index - 1
	}
	e.view = currentView{viewingHistory: true, index: idx}
	e.cursor = len(e.currentBytes())
	return 0
}

func cmdNextHistory(e *Editor) int {
	if !e.view.viewingHistory {
		return -1
	}
	if e.view.index+1 >= e.hist.Size() {
		e.view = currentView{}
		e.cursor = len(e.buf.Bytes())
		return 0
	}
	e.view.index++
	e.cursor = len(e.currentBytes())
	return 0
}

func cmdBeginningOfHistory(e *Editor) int {
	if e.hist.Size() == 0 {
		return -1
	}
	e.view = currentView{viewingHistory: true, index: 0}
	e.cursor = len(e.currentBytes())
	return 0
}

func cmdEndOfHistory(e *Editor) int {
	e.view = currentView{}
	e.cursor = len(e.buf.Bytes())
	return 0
}

// cmdAcceptLine promotes a viewed history entry into the buffer (an
// accepted recalled line is the line, not a reference to history),
// pushes it onto history and persists if a history file is
// configured, then signals accept.
func cmdAcceptLine(e *Editor) int {
	e.pop()
	line := append([]byte(nil), e.buf.Bytes()...)
	if e.hist.Push(line) && e.histFile != "" {
		_ = e.hist.Write(e.histFile)
	}
	return 1
}

// eofTerminateSentinel is cmdEndOfFile's signal to dispatch that an
// empty-buffer Ctrl-D should be routed to runTerminate rather than
// refused with a bell; it falls outside the ordinary <0 refusal range
// dispatch otherwise applies uniformly to commandTable entries.
const eofTerminateSentinel = -2

// cmdEndOfFile accepts on Ctrl-D with a non-empty buffer (treated as
// accept-line) and otherwise behaves as terminate, since there is
// nothing left to edit.
func cmdEndOfFile(e *Editor) int {
	if len(e.buf.Bytes()) > 0 {
		return cmdAcceptLine(e)
	}
	return eofTerminateSentinel
}

// runTerminate implements the terminate command's two supported
// behaviors. By default it mirrors a process receiving SIGINT at the
// prompt: restore the terminal and exit the process outright, never
// returning control to Read's caller. With WithAbortOnTerminate it
// instead unwinds Read with ok=false, keeping the process alive; the
// session is not closed, so the terminal stays in raw mode for the
// next Read.
func (e *Editor) runTerminate() stepOutcome {
	if e.abortOnTerminate {
		return stepAbort
	}
	if e.session != nil {
		_ = e.session.Close()
	}
	_, _ = e.out.Write([]byte("\n"))
	e.exit(1)
	return stepAbort
}
