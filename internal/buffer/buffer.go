// Package buffer implements the mutable byte sequence backing a line
// being edited. It has no notion of codepoints: every offset is a byte
// offset and callers are responsible for keeping them aligned on
// UTF-8 boundaries.
package buffer

// Buffer is a growable byte sequence with insert/erase/assign/append/
// prepend at arbitrary byte offsets. The zero value is an empty buffer
// ready to use.
type Buffer struct {
	data []byte
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffer contents. The returned slice aliases the
// buffer's storage and is only valid until the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// String returns the buffer contents as a string (a copy).
func (b *Buffer) String() string {
	return string(b.data)
}

// At returns the byte at offset i.
func (b *Buffer) At(i int) byte {
	return b.data[i]
}

// Assign replaces the buffer contents wholesale.
func (b *Buffer) Assign(p []byte) {
	b.data = append(b.data[:0], p...)
}

// Append adds p to the end of the buffer.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Prepend adds p to the beginning of the buffer.
func (b *Buffer) Prepend(p []byte) {
	grown := make([]byte, 0, len(p)+len(b.data))
	grown = append(grown, p...)
	grown = append(grown, b.data...)
	b.data = grown
}

// Insert places p at byte offset at, shifting the remainder right.
func (b *Buffer) Insert(at int, p []byte) {
	if len(p) == 0 {
		return
	}
	b.data = append(b.data, p...)       // grow by len(p), contents beyond at are garbage for now
	copy(b.data[at+len(p):], b.data[at:len(b.data)-len(p)])
	copy(b.data[at:at+len(p)], p)
}

// InsertByte places a single byte at offset at.
func (b *Buffer) InsertByte(at int, c byte) {
	b.Insert(at, []byte{c})
}

// Erase removes count bytes starting at offset at.
func (b *Buffer) Erase(at, count int) {
	if count <= 0 {
		return
	}
	b.data = append(b.data[:at], b.data[at+count:]...)
}
