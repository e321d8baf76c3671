package pathutil

import (
	"errors"
	"strings"
	"testing"
)

func TestBufferGrowsLinearly(t *testing.T) {
	b := NewBuffer()
	if cap(b.buf) != bufferIncrement {
		t.Fatalf("initial cap = %d, want %d", cap(b.buf), bufferIncrement)
	}

	b.AppendString(strings.Repeat("a", 600))
	if got, want := cap(b.buf), 3*bufferIncrement; got != want {
		t.Fatalf("cap after 600 bytes = %d, want %d", got, want)
	}
	if b.Len() != 600 {
		t.Fatalf("len = %d, want 600", b.Len())
	}
}

func TestBufferFinalizeRewritesBackslashes(t *testing.T) {
	b := NewBuffer()
	b.AppendString(`C:\work`)
	b.AppendByte('\\')
	if err := b.AppendRun([]byte("dir\\file"), 8); err != nil {
		t.Fatalf("append run: %v", err)
	}

	got, err := b.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if got != "C:/work/dir/file" {
		t.Fatalf("finalize = %q", got)
	}
}

func TestBufferAppendRunPartial(t *testing.T) {
	b := NewBuffer()
	if err := b.AppendRun([]byte("abcdef"), 3); err != nil {
		t.Fatalf("append run: %v", err)
	}
	got, _ := b.Finalize()
	if got != "abc" {
		t.Fatalf("got %q, want abc", got)
	}
}

func TestBufferNilRunPoisons(t *testing.T) {
	b := NewBuffer()
	b.AppendString("/usr")

	if err := b.AppendRun(nil, 4); !errors.Is(err, ErrNilRun) {
		t.Fatalf("append nil run err = %v, want ErrNilRun", err)
	}

	// Later appends are ignored and the error sticks.
	b.AppendString("/lib")
	if err := b.AppendRun([]byte("x"), 1); !errors.Is(err, ErrNilRun) {
		t.Fatalf("second append err = %v, want ErrNilRun", err)
	}

	got, err := b.Finalize()
	if !errors.Is(err, ErrNilRun) {
		t.Fatalf("finalize err = %v, want ErrNilRun", err)
	}
	if got != "" {
		t.Fatalf("poisoned buffer produced %q", got)
	}
}

func TestBufferNilRunZeroLengthIsFine(t *testing.T) {
	b := NewBuffer()
	if err := b.AppendRun(nil, 0); err != nil {
		t.Fatalf("append nil zero run: %v", err)
	}
}

func TestBufferUseAfterFinalize(t *testing.T) {
	b := NewBuffer()
	b.AppendByte('/')
	if _, err := b.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if _, err := b.Finalize(); !errors.Is(err, ErrBufferFinalized) {
		t.Fatalf("second finalize err = %v", err)
	}
	if err := b.AppendRun([]byte("a"), 1); !errors.Is(err, ErrBufferFinalized) {
		t.Fatalf("append after finalize err = %v", err)
	}
}
