package pathutil

import "errors"

// bufferIncrement is both the initial capacity and the growth step.
const bufferIncrement = 256

var (
	// ErrNilRun is returned when AppendRun is given a nil source with a
	// nonzero length. The buffer is poisoned and can no longer produce a path.
	ErrNilRun = errors.New("pathutil: nil run with nonzero length")

	// ErrBufferFinalized is returned when a buffer is used after Finalize.
	ErrBufferFinalized = errors.New("pathutil: buffer already finalized")
)

// Buffer accumulates the bytes of a single output path. It is owned by one
// operation and consumed by Finalize.
type Buffer struct {
	buf  []byte
	err  error
	done bool
}

// NewBuffer returns an empty buffer with the initial capacity reserved.
func NewBuffer() *Buffer {
	return &Buffer{buf: make([]byte, 0, bufferIncrement)}
}

// grow makes room for n more bytes, adding bufferIncrement until it fits.
func (b *Buffer) grow(n int) {
	need := len(b.buf) + n
	if need <= cap(b.buf) {
		return
	}
	c := cap(b.buf)
	for need > c {
		c += bufferIncrement
	}
	nb := make([]byte, len(b.buf), c)
	copy(nb, b.buf)
	b.buf = nb
}

func (b *Buffer) usable() bool {
	return b.err == nil && !b.done
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	if !b.usable() {
		return
	}
	b.grow(1)
	b.buf = append(b.buf, c)
}

// AppendRun appends the first n bytes of src.
func (b *Buffer) AppendRun(src []byte, n int) error {
	if b.done {
		return ErrBufferFinalized
	}
	if b.err != nil {
		return b.err
	}
	if n <= 0 {
		return nil
	}
	if src == nil {
		b.err = ErrNilRun
		b.buf = nil
		return b.err
	}
	if n > len(src) {
		n = len(src)
	}
	b.grow(n)
	b.buf = append(b.buf, src[:n]...)
	return nil
}

// AppendString appends all of s.
func (b *Buffer) AppendString(s string) {
	if !b.usable() || s == "" {
		return
	}
	b.grow(len(s))
	b.buf = append(b.buf, s...)
}

// Len returns the number of bytes accumulated so far.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// LastByte returns the final byte, or 0 when the buffer is empty.
func (b *Buffer) LastByte() byte {
	if len(b.buf) == 0 {
		return 0
	}
	return b.buf[len(b.buf)-1]
}

// ByteAt returns the byte at index i.
func (b *Buffer) ByteAt(i int) byte {
	return b.buf[i]
}

// Truncate shortens the buffer to n bytes.
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(b.buf) {
		b.buf = b.buf[:n]
	}
}

// Err reports the error that poisoned the buffer, if any.
func (b *Buffer) Err() error {
	return b.err
}

// Finalize rewrites backslashes to forward slashes and returns the path.
// The buffer is released; every later call fails with ErrBufferFinalized.
func (b *Buffer) Finalize() (string, error) {
	if b.done {
		return "", ErrBufferFinalized
	}
	b.done = true
	if b.err != nil {
		return "", b.err
	}
	for i, c := range b.buf {
		if c == '\\' {
			b.buf[i] = '/'
		}
	}
	s := string(b.buf)
	b.buf = nil
	return s, nil
}
