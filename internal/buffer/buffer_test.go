package buffer

import "testing"

func TestAssignAndString(t *testing.T) {
	b := New()
	b.Assign([]byte("hello"))
	if got := b.String(); got != "hello" {
		t.Fatalf("String() = %q, want %q", got, "hello")
	}
	if b.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", b.Len())
	}
}

func TestInsertMiddle(t *testing.T) {
	b := New()
	b.Assign([]byte("helo"))
	b.Insert(3, []byte("l"))
	if got := b.String(); got != "hello" {
		t.Fatalf("String() = %q, want %q", got, "hello")
	}
}

func TestInsertAtStartAndEnd(t *testing.T) {
	b := New()
	b.Assign([]byte("bc"))
	b.Insert(0, []byte("a"))
	if got := b.String(); got != "abc" {
		t.Fatalf("String() = %q, want %q", got, "abc")
	}
	b.Insert(b.Len(), []byte("d"))
	if got := b.String(); got != "abcd" {
		t.Fatalf("String() = %q, want %q", got, "abcd")
	}
}

func TestInsertByte(t *testing.T) {
	b := New()
	b.Assign([]byte("ac"))
	b.InsertByte(1, 'b')
	if got := b.String(); got != "abc" {
		t.Fatalf("String() = %q, want %q", got, "abc")
	}
}

func TestErase(t *testing.T) {
	b := New()
	b.Assign([]byte("foo bar baz"))
	b.Erase(3, 4) // remove " bar"
	if got := b.String(); got != "foo baz" {
		t.Fatalf("String() = %q, want %q", got, "foo baz")
	}
}

func TestEraseToEnd(t *testing.T) {
	b := New()
	b.Assign([]byte("foo bar"))
	b.Erase(3, b.Len()-3)
	if got := b.String(); got != "foo" {
		t.Fatalf("String() = %q, want %q", got, "foo")
	}
}

func TestAppendPrepend(t *testing.T) {
	b := New()
	b.Assign([]byte("bar"))
	b.Append([]byte("baz"))
	b.Prepend([]byte("foo"))
	if got := b.String(); got != "foobarbaz" {
		t.Fatalf("String() = %q, want %q", got, "foobarbaz")
	}
}

func TestInsertDoesNotAliasSource(t *testing.T) {
	b := New()
	b.Assign([]byte("ac"))
	src := []byte("b")
	b.Insert(1, src)
	src[0] = 'z'
	if got := b.String(); got != "abc" {
		t.Fatalf("String() = %q, want %q (mutation of source leaked in)", got, "abc")
	}
}
