package aes

import "fmt"

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// KeySize selects an AES variant by key length in bits.
type KeySize int

const (
	// AES128 uses a 16-byte key and 10 rounds.
	AES128 KeySize = 128
	// AES192 uses a 24-byte key and 12 rounds.
	AES192 KeySize = 192
	// AES256 uses a 32-byte key and 14 rounds.
	AES256 KeySize = 256
)

// ParseKeySize validates a key size given in bits.
func ParseKeySize(bits int) (KeySize, error) {
	switch size := KeySize(bits); size {
	case AES128, AES192, AES256:
		return size, nil
	default:
		return 0, fmt.Errorf("%w: %d bits", ErrKeySize, bits)
	}
}

// Bytes returns the key length in bytes.
func (k KeySize) Bytes() int {
	return int(k) / 8
}

// Words returns Nk, the key length in 32-bit words.
func (k KeySize) Words() int {
	return int(k) / 32
}

// Rounds returns Nr, the number of cipher rounds.
func (k KeySize) Rounds() int {
	return k.Words() + 6
}

// Schedule holds the expanded round keys of one cipher key.
// It is immutable once built and safe for concurrent use.
type Schedule struct {
	size KeySize

	// keys stores each round key in the row-major layout of the block state.
	keys [][BlockSize]byte
}

// NewSchedule expands key into Nr+1 round keys. The key size is inferred from len(key).
func NewSchedule(key []byte) (*Schedule, error) {
	size, err := ParseKeySize(len(key) * 8)
	if err != nil {
		return nil, err
	}

	return newSchedule(size, key), nil
}

// NewScheduleSize is like NewSchedule but requires key to match size.
func NewScheduleSize(size KeySize, key []byte) (*Schedule, error) {
	if _, err := ParseKeySize(int(size)); err != nil {
		return nil, err
	}

	if len(key) != size.Bytes() {
		return nil, fmt.Errorf("%w: AES-%d needs %d bytes, got %d", ErrKeyLength, size, size.Bytes(), len(key))
	}

	return newSchedule(size, key), nil
}

func newSchedule(size KeySize, key []byte) *Schedule {
	nk := size.Words()
	nr := size.Rounds()

	words := make([][4]byte, 4*(nr+1))

	for i := range nk {
		copy(words[i][:], key[4*i:4*i+4])
	}

	for i := nk; i < len(words); i++ {
		temp := words[i-1]

		switch {
		case i%nk == 0:
			temp = subWord(rotWord(temp))
			temp[0] ^= rcon[i/nk-1]
		case nk > 6 && i%nk == 4:
			temp = subWord(temp)
		}

		for j := range temp {
			words[i][j] = words[i-nk][j] ^ temp[j]
		}
	}

	keys := make([][BlockSize]byte, nr+1)

	// Words are state columns; transpose them into the row-major state layout.
	for round := range keys {
		for col := range 4 {
			for row := range 4 {
				keys[round][4*row+col] = words[4*round+col][row]
			}
		}
	}

	return &Schedule{size: size, keys: keys}
}

func rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

func subWord(w [4]byte) [4]byte {
	return [4]byte{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}

// KeySize returns the variant the schedule was built for.
func (s *Schedule) KeySize() KeySize {
	return s.size
}

// Rounds returns Nr.
func (s *Schedule) Rounds() int {
	return len(s.keys) - 1
}

// Len returns the total size of the schedule in bytes.
func (s *Schedule) Len() int {
	return len(s.keys) * BlockSize
}

// RoundKey returns round key i in FIPS-197 byte order (column by column).
func (s *Schedule) RoundKey(i int) []byte {
	out := make([]byte, BlockSize)

	for col := range 4 {
		for row := range 4 {
			out[4*col+row] = s.keys[i][4*row+col]
		}
	}

	return out
}
