package wire_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"veilchat/internal/domain"
	"veilchat/internal/wire"
)

// trickleWriter accepts at most one byte per Write call.
type trickleWriter struct{ buf bytes.Buffer }

func (w *trickleWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return w.buf.Write(p[:1])
}

func TestFrame_CoalescedStream(t *testing.T) {
	var stream bytes.Buffer
	msgs := [][]byte{[]byte("hello"), []byte("world"), bytes.Repeat([]byte("x"), 1000)}
	for _, m := range msgs {
		if err := wire.WriteFrame(&stream, m, 0); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	r := iotest.OneByteReader(&stream)
	for _, want := range msgs {
		got, err := wire.ReadFrame(r, 0)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
	if _, err := wire.ReadFrame(r, 0); !errors.Is(err, io.EOF) {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestWriteFrame_PartialWrites(t *testing.T) {
	w := &trickleWriter{}
	if err := wire.WriteFrame(w, []byte("partial"), 0); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := wire.ReadFrame(&w.buf, 0)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if string(got) != "partial" {
		t.Fatalf("got %q", got)
	}
}

func TestReadFrame_Limits(t *testing.T) {
	var stream bytes.Buffer
	if err := wire.WriteFrame(&stream, bytes.Repeat([]byte("a"), 100), 0); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	_, err := wire.ReadFrame(&stream, 10)
	if !errors.Is(err, wire.ErrFrameTooLarge) || !errors.Is(err, domain.ErrIntegrity) {
		t.Fatalf("err = %v, want ErrFrameTooLarge", err)
	}

	if err := wire.WriteFrame(io.Discard, bytes.Repeat([]byte("a"), 11), 10); !errors.Is(err, wire.ErrFrameTooLarge) {
		t.Fatalf("write err = %v, want ErrFrameTooLarge", err)
	}
	if err := wire.WriteFrame(io.Discard, nil, 0); !errors.Is(err, domain.ErrIntegrity) {
		t.Fatalf("empty write err = %v, want ErrIntegrity", err)
	}
}

func TestReadFrame_Truncated(t *testing.T) {
	var stream bytes.Buffer
	if err := wire.WriteFrame(&stream, []byte("truncated"), 0); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	short := bytes.NewReader(stream.Bytes()[:stream.Len()-2])
	if _, err := wire.ReadFrame(short, 0); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want io.ErrUnexpectedEOF", err)
	}
}
