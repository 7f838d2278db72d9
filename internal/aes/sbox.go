package aes

// rconSize covers the largest key expansion (AES-128 uses ten entries).
const rconSize = 15

//nolint:gochecknoglobals // immutable after init, read concurrently by every worker
var (
	sbox = generateSBox()
	rcon = generateRcon()
)

// SBox returns a copy of the substitution table.
func SBox() [256]byte {
	return sbox
}

func rotl8(b byte, shift uint) byte {
	return b<<shift | b>>(8-shift)
}

// generateSBox builds the table as affine(inverse(x)).
func generateSBox() [256]byte {
	var table [256]byte

	for x := range 256 {
		inv := Inverse(byte(x))
		table[x] = inv ^ rotl8(inv, 1) ^ rotl8(inv, 2) ^ rotl8(inv, 3) ^ rotl8(inv, 4) ^ 0x63
	}

	table[0] = 0x63

	return table
}

// generateRcon returns the successive doublings of 1 in GF(2^8).
func generateRcon() [rconSize]byte {
	var table [rconSize]byte

	value := byte(1)

	for i := range table {
		table[i] = value
		value = Mul(value, 2)
	}

	return table
}
