package lineedit

// CommandID identifies one of the editor's built-in commands. Hosts
// reference these when building a custom Binding table; selecting
// which commands to bind to which sequences is entirely a host
// concern, the editor only supplies the command set and its default
// table.
type CommandID int

const (
	// CmdNone is the zero value. It never appears in a binding; it is
	// the LastCommand value after a literal insertion or before the
	// first command has run.
	CmdNone CommandID = iota
	CmdBeginningOfLine
	CmdBackwardChar
	CmdTerminate
	CmdEndOfFile
	CmdEndOfLine
	CmdForwardChar
	CmdBackwardDeleteChar
	CmdAcceptLine
	CmdForwardKillLine
	CmdNextHistory
	CmdPreviousHistory
	CmdBackwardKillLine
	CmdVerbatim
	CmdBackwardKillWord
	CmdYank
	CmdBackwardWord
	CmdForwardWord
	CmdDeleteChar
	CmdBeginningOfHistory
	CmdEndOfHistory
	CmdForwardKillWord
)

var commandNames = map[CommandID]string{
	CmdNone:               "none",
	CmdBeginningOfLine:    "beginning-of-line",
	CmdBackwardChar:       "backward-char",
	CmdTerminate:          "terminate",
	CmdEndOfFile:          "end-of-file",
	CmdEndOfLine:          "end-of-line",
	CmdForwardChar:        "forward-char",
	CmdBackwardDeleteChar: "backward-delete-char",
	CmdAcceptLine:         "accept-line",
	CmdForwardKillLine:    "forward-kill-line",
	CmdNextHistory:        "next-history",
	CmdPreviousHistory:    "previous-history",
	CmdBackwardKillLine:   "backward-kill-line",
	CmdVerbatim:           "verbatim",
	CmdBackwardKillWord:   "backward-kill-word",
	CmdYank:               "yank",
	CmdBackwardWord:       "backward-word",
	CmdForwardWord:        "forward-word",
	CmdDeleteChar:         "delete-char",
	CmdBeginningOfHistory: "beginning-of-history",
	CmdEndOfHistory:       "end-of-history",
	CmdForwardKillWord:    "forward-kill-word",
}

// String returns the command's stable identifier name, e.g.
// "backward-char". It is the name hosts write in a binding config.
func (c CommandID) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommandID resolves a stable command name (as used in
// String/binding config) back to a CommandID.
func ParseCommandID(name string) (CommandID, bool) {
	for id, n := range commandNames {
		if n == name {
			return id, true
		}
	}
	return CmdNone, false
}

// Binding pairs a byte sequence with the command it triggers. A flat
// slice of Bindings is compiled into a key-sequence FSM by
// (*Editor).SetKeyBindings; later entries win on a conflicting
// sequence.
type Binding struct {
	Sequence []byte
	Command  CommandID
}

// DefaultBindings returns the illustrative binding table from the
// specification, reproduced bit-exact: plain control characters for
// the common Emacs-style motions and kills, Meta-b/Meta-f for word
// motion, and the ANSI CSI sequences a standard terminal sends for the
// arrow keys, Delete, Home and End.
func DefaultBindings() []Binding {
	return []Binding{
		{[]byte{0x01}, CmdBeginningOfLine},
		{[]byte{0x02}, CmdBackwardChar},
		{[]byte{0x03}, CmdTerminate},
		{[]byte{0x04}, CmdEndOfFile},
		{[]byte{0x05}, CmdEndOfLine},
		{[]byte{0x06}, CmdForwardChar},
		{[]byte{0x08}, CmdBackwardDeleteChar},
		{[]byte{0x0A}, CmdAcceptLine},
		{[]byte{0x0B}, CmdForwardKillLine},
		{[]byte{0x0E}, CmdNextHistory},
		{[]byte{0x10}, CmdPreviousHistory},
		{[]byte{0x15}, CmdBackwardKillLine},
		{[]byte{0x16}, CmdVerbatim},
		{[]byte{0x17}, CmdBackwardKillWord},
		{[]byte{0x19}, CmdYank},
		{[]byte{0x1B, 'b'}, CmdBackwardWord},
		{[]byte{0x1B, 'f'}, CmdForwardWord},
		{[]byte{0x1B, 'd'}, CmdForwardKillWord},
		{[]byte{0x1B, '[', 'A'}, CmdPreviousHistory},
		{[]byte{0x1B, '[', 'B'}, CmdNextHistory},
		{[]byte{0x1B, '[', 'C'}, CmdForwardChar},
		{[]byte{0x1B, '[', 'D'}, CmdBackwardChar},
		{[]byte{0x1B, '[', '3', '~'}, CmdDeleteChar},
		{[]byte{0x1B, '[', '7', '~'}, CmdBeginningOfLine},
		{[]byte{0x1B, '[', '8', '~'}, CmdEndOfLine},
		{[]byte{0x7F}, CmdBackwardDeleteChar},
	}
}
