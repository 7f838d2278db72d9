package encryption

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// lockedReader serializes seek+read pairs on a shared input handle.
type lockedReader struct {
	mu sync.Mutex
	r  io.ReadSeeker
}

// readAt fills buf from offset. Anything less than len(buf) bytes is ErrShortRead.
func (l *lockedReader) readAt(buf []byte, offset int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.r.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking input to %d: %w", offset, err)
	}

	n, err := io.ReadFull(l.r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: read %d of %d bytes at offset %d", ErrShortRead, n, len(buf), offset)
	}

	if err != nil {
		return fmt.Errorf("reading input at %d: %w", offset, err)
	}

	return nil
}

// lockedWriter serializes seek+write pairs on a shared output handle.
type lockedWriter struct {
	mu sync.Mutex
	w  io.WriteSeeker
}

func (l *lockedWriter) writeAt(buf []byte, offset int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.w.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking output to %d: %w", offset, err)
	}

	if _, err := l.w.Write(buf); err != nil {
		return fmt.Errorf("writing output at %d: %w", offset, err)
	}

	return nil
}
