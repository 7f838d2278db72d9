package aes

// polynomial is the low byte of the AES reduction polynomial x^8+x^4+x^3+x+1.
const polynomial = 0x1b

// Mul multiplies two elements of GF(2^8) modulo the AES polynomial.
func Mul(a, b byte) byte {
	var product byte

	for range 8 {
		if b&0x01 != 0 {
			product ^= a
		}

		carry := a & 0x80

		a <<= 1

		if carry != 0 {
			a ^= polynomial
		}

		b >>= 1
	}

	return product
}

// Inverse returns the multiplicative inverse of a, computed as a^254.
// Zero has no inverse and maps to zero.
func Inverse(a byte) byte {
	result := byte(1)
	base := a

	// 254 = 0b11111110
	for exp := 254; exp > 0; exp >>= 1 {
		if exp&1 != 0 {
			result = Mul(result, base)
		}

		base = Mul(base, base)
	}

	return result
}
