package aes

import "errors"

var (
	// ErrKeySize is returned for keys or key sizes other than 128, 192 or 256 bits.
	ErrKeySize = errors.New("unsupported AES key size")
	// ErrKeyLength is returned when the key length does not match the requested key size.
	ErrKeyLength = errors.New("key length does not match key size")
)
