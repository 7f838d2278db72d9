package encryption

import (
	"crypto/subtle"

	"github.com/idelchi/aesctr/internal/aes"
	"github.com/idelchi/aesctr/internal/counter"
)

// XORKeyStream XORs buf with the keystream starting at block startingBlock.
// Only the leading bytes of a trailing partial block are touched.
func XORKeyStream(schedule *aes.Schedule, iv counter.Counter, startingBlock uint64, buf []byte) {
	var keystream [aes.BlockSize]byte

	for index, offset := startingBlock, 0; offset < len(buf); index, offset = index+1, offset+aes.BlockSize {
		block := counter.Derive(iv, index)
		schedule.Encrypt(keystream[:], block[:])

		end := min(offset+aes.BlockSize, len(buf))
		subtle.XORBytes(buf[offset:end], buf[offset:end], keystream[:end-offset])
	}
}
