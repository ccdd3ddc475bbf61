package history

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPushDedupAndEviction(t *testing.T) {
	s := New(2)

	if !s.Push([]byte("a")) {
		t.Fatalf("Push(a) = false, want true")
	}
	if s.Push([]byte("a")) {
		t.Fatalf("Push(a) again = true, want false (duplicate of most recent)")
	}
	if !s.Push([]byte("b")) {
		t.Fatalf("Push(b) = false, want true")
	}
	if !s.Push([]byte("a")) {
		t.Fatalf("Push(a) after b = false, want true (not the most recent entry anymore)")
	}

	if got := s.Size(); got != 2 {
		t.Fatalf("Size() = %d, want 2 (capacity reached, oldest evicted)", got)
	}
	if got := string(s.Index(0)); got != "b" {
		t.Fatalf("Index(0) = %q, want %q", got, "b")
	}
	if got := string(s.Index(1)); got != "a" {
		t.Fatalf("Index(1) = %q, want %q", got, "a")
	}
}

func TestPushZeroCapacityIsNoop(t *testing.T) {
	s := New(0)
	if s.Push([]byte("x")) {
		t.Fatalf("Push on zero-capacity store = true, want false")
	}
	if s.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", s.Size())
	}
}

func TestReadMissingFileIsNotError(t *testing.T) {
	s := New(10)
	path := filepath.Join(t.TempDir(), "does-not-exist")
	if err := s.Read(path); err != nil {
		t.Fatalf("Read(missing) = %v, want nil", err)
	}
	if s.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", s.Size())
	}
}

func TestReadEmptyFile(t *testing.T) {
	s := New(10)
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := s.Read(path); err != nil {
		t.Fatalf("Read(empty) = %v, want nil", err)
	}
	if s.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", s.Size())
	}
}

func TestReadPreservesBlankLines(t *testing.T) {
	s := New(10)
	path := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(path, []byte("first\n\nthird\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := s.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", s.Size())
	}
	if got := string(s.Index(1)); got != "" {
		t.Fatalf("Index(1) = %q, want empty string", got)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	s := New(10)
	s.Push([]byte("one"))
	s.Push([]byte("two"))
	s.Push([]byte("three"))
	if err := s.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "one\ntwo\nthree\n"
	if string(data) != want {
		t.Fatalf("file contents = %q, want %q", data, want)
	}

	loaded := New(10)
	if err := loaded.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if loaded.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", loaded.Size())
	}
	for i, want := range []string{"one", "two", "three"} {
		if got := string(loaded.Index(i)); got != want {
			t.Fatalf("Index(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestWriteRespectsCapacityAfterEviction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	s := New(2)
	s.Push([]byte("one"))
	s.Push([]byte("two"))
	s.Push([]byte("three"))
	if err := s.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "two\nthree\n"
	if string(data) != want {
		t.Fatalf("file contents = %q, want %q", data, want)
	}
}

func TestIndexIsImmutable(t *testing.T) {
	s := New(10)
	s.Push([]byte("line"))
	entry := s.Index(0)
	entry[0] = 'L'
	if got := string(s.Index(0)); got != "line" {
		t.Fatalf("Index(0) = %q after caller mutation, want unaffected %q", got, "line")
	}
}
