package encryption

import (
	"errors"

	"github.com/idelchi/aesctr/internal/fileutil"
)

var (
	// ErrIVLength is returned when the IV is not exactly 16 bytes.
	ErrIVLength = errors.New("IV must be 16 bytes")
	// ErrChunkSize is returned when the chunk size is not a positive multiple of the block size.
	ErrChunkSize = errors.New("chunk size must be a positive multiple of 16")
	// ErrParallel is returned when fewer than one worker is requested.
	ErrParallel = errors.New("parallel must be at least 1")
	// ErrShortRead is returned when the input yields fewer bytes than its size promised.
	ErrShortRead = errors.New("short read")
	// ErrNotRegular is returned when the input is not a regular file.
	ErrNotRegular = fileutil.ErrNotRegular
)
