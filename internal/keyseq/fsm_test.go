package keyseq

import "testing"

type cmd int

const (
	cmdNone cmd = iota
	cmdPrevHistory
	cmdNextHistory
	cmdBackwardChar
)

func testBindings() []Binding[cmd] {
	return []Binding[cmd]{
		{Sequence: []byte{0x02}, Command: cmdBackwardChar},
		{Sequence: []byte{0x1b, '[', 'A'}, Command: cmdPrevHistory},
		{Sequence: []byte{0x1b, '[', 'B'}, Command: cmdNextHistory},
	}
}

func feedAll(f *FSM[cmd], bytes []byte) (Result, cmd) {
	var r Result
	var c cmd
	for _, b := range bytes {
		r, c = f.Feed(b)
	}
	return r, c
}

func TestSingleByteBinding(t *testing.T) {
	f := New(testBindings())
	r, c := f.Feed(0x02)
	if r != Final || c != cmdBackwardChar {
		t.Fatalf("Feed(0x02) = (%v, %v), want (Final, cmdBackwardChar)", r, c)
	}
}

func TestArrowUpSequence(t *testing.T) {
	f := New(testBindings())
	r, _ := f.Feed(0x1b)
	if r != Inner {
		t.Fatalf("Feed(ESC) = %v, want Inner", r)
	}
	r, _ = f.Feed('[')
	if r != Inner {
		t.Fatalf("Feed([) = %v, want Inner", r)
	}
	r, c := f.Feed('A')
	if r != Final || c != cmdPrevHistory {
		t.Fatalf("Feed(A) = (%v, %v), want (Final, cmdPrevHistory)", r, c)
	}
}

func TestArrowDownSequence(t *testing.T) {
	f := New(testBindings())
	r, c := feedAll(f, []byte{0x1b, '[', 'B'})
	if r != Final || c != cmdNextHistory {
		t.Fatalf("feedAll(ESC [ B) = (%v, %v), want (Final, cmdNextHistory)", r, c)
	}
}

func TestUnknownTailIsNone(t *testing.T) {
	f := New(testBindings())
	f.Feed(0x1b)
	f.Feed('[')
	r, _ := f.Feed('Q')
	if r != None {
		t.Fatalf("Feed(Q) = %v, want None", r)
	}
	// FSM must have reset: a fresh byte afterwards starts a new walk.
	r, c := f.Feed(0x02)
	if r != Final || c != cmdBackwardChar {
		t.Fatalf("post-reset Feed(0x02) = (%v, %v), want (Final, cmdBackwardChar)", r, c)
	}
}

func TestDeadEndOnUnboundFirstByte(t *testing.T) {
	f := New(testBindings())
	r, _ := f.Feed('z')
	if r != None {
		t.Fatalf("Feed(z) = %v, want None", r)
	}
}

// TestPrefixBindingNeverFiresShort verifies the §4.2 tie-break: when one
// binding's sequence is a strict prefix of another's, the shorter one
// never resolves to Final on its own — the walk stays Inner until a
// dead end forces None, discarding the short match entirely.
func TestPrefixBindingNeverFiresShort(t *testing.T) {
	bindings := []Binding[cmd]{
		{Sequence: []byte{0x1b}, Command: cmdBackwardChar},
		{Sequence: []byte{0x1b, '[', 'A'}, Command: cmdPrevHistory},
	}
	f := New(bindings)
	r, _ := f.Feed(0x1b)
	if r != Inner {
		t.Fatalf("Feed(ESC) = %v, want Inner (ESC is a prefix of ESC [ A)", r)
	}
	r, _ = f.Feed('[')
	if r != Inner {
		t.Fatalf("Feed([) = %v, want Inner", r)
	}
	r, c := f.Feed('A')
	if r != Final || c != cmdPrevHistory {
		t.Fatalf("Feed(A) = (%v, %v), want (Final, cmdPrevHistory)", r, c)
	}

	// Now take the dead-end path: ESC followed by a byte with no
	// continuation must yield None, not Final(cmdBackwardChar).
	f2 := New(bindings)
	r, _ = f2.Feed(0x1b)
	if r != Inner {
		t.Fatalf("Feed(ESC) = %v, want Inner", r)
	}
	r, _ = f2.Feed('z')
	if r != None {
		t.Fatalf("Feed(z) = %v, want None (short ESC binding must not fire)", r)
	}
}

func TestLaterBindingOverridesEarlier(t *testing.T) {
	bindings := []Binding[cmd]{
		{Sequence: []byte{0x01}, Command: cmdBackwardChar},
		{Sequence: []byte{0x01}, Command: cmdPrevHistory},
	}
	f := New(bindings)
	r, c := f.Feed(0x01)
	if r != Final || c != cmdPrevHistory {
		t.Fatalf("Feed(0x01) = (%v, %v), want (Final, cmdPrevHistory)", r, c)
	}
}

func TestEmptySequenceIgnored(t *testing.T) {
	bindings := []Binding[cmd]{
		{Sequence: nil, Command: cmdPrevHistory},
		{Sequence: []byte{0x01}, Command: cmdBackwardChar},
	}
	f := New(bindings)
	r, c := f.Feed(0x01)
	if r != Final || c != cmdBackwardChar {
		t.Fatalf("Feed(0x01) = (%v, %v), want (Final, cmdBackwardChar)", r, c)
	}
}
