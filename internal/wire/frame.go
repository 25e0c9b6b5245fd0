package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"veilchat/internal/domain"
)

// HeaderSize is the size of the length prefix.
const HeaderSize = 4

// ErrFrameTooLarge is returned when a frame exceeds the size limit. It
// wraps domain.ErrIntegrity: an oversized length means the stream can no
// longer be trusted.
var ErrFrameTooLarge = fmt.Errorf("%w: frame too large", domain.ErrIntegrity)

var errEmptyFrame = fmt.Errorf("%w: empty frame", domain.ErrIntegrity)

// WriteFrame writes the length prefix and frame, looping until every byte
// has been accepted by w or w returns an error.
func WriteFrame(w io.Writer, frame []byte, max int) error {
	if len(frame) == 0 {
		return errEmptyFrame
	}
	if max > 0 && len(frame) > max {
		return ErrFrameTooLarge
	}
	buf := make([]byte, HeaderSize+len(frame))
	binary.BigEndian.PutUint32(buf, uint32(len(frame)))
	copy(buf[HeaderSize:], frame)
	return writeFull(w, buf)
}

func writeFull(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		b = b[n:]
	}
	return nil
}

// ReadFrame reads exactly one frame from r. A clean end of stream before
// the header is reported as io.EOF; a stream that ends mid-frame is
// reported as io.ErrUnexpectedEOF.
func ReadFrame(r io.Reader, max int) ([]byte, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n == 0 {
		return nil, errEmptyFrame
	}
	if max > 0 && uint64(n) > uint64(max) {
		return nil, ErrFrameTooLarge
	}
	frame := make([]byte, n)
	if _, err := io.ReadFull(r, frame); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return frame, nil
}
