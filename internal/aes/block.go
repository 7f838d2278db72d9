package aes

// state is the 4x4 cipher state in row-major order: state[4*row+col].
type state [BlockSize]byte

// Encrypt applies the forward cipher to the first block of src and writes it to dst.
// dst and src may overlap entirely. It panics if either is shorter than BlockSize.
func (s *Schedule) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes: input not full block")
	}

	if len(dst) < BlockSize {
		panic("aes: output not full block")
	}

	var st state

	for col := range 4 {
		for row := range 4 {
			st[4*row+col] = src[4*col+row]
		}
	}

	st.addRoundKey(&s.keys[0])

	rounds := s.Rounds()

	for round := 1; round <= rounds; round++ {
		st.subBytes()
		st.shiftRows()

		if round != rounds {
			st.mixColumns()
		}

		st.addRoundKey(&s.keys[round])
	}

	for col := range 4 {
		for row := range 4 {
			dst[4*col+row] = st[4*row+col]
		}
	}
}

func (st *state) addRoundKey(key *[BlockSize]byte) {
	for i := range st {
		st[i] ^= key[i]
	}
}

func (st *state) subBytes() {
	for i := range st {
		st[i] = sbox[st[i]]
	}
}

// shiftRows rotates row r left by r positions.
func (st *state) shiftRows() {
	for row := 1; row < 4; row++ {
		var tmp [4]byte

		for col := range 4 {
			tmp[col] = st[4*row+(col+row)%4]
		}

		copy(st[4*row:4*row+4], tmp[:])
	}
}

func (st *state) mixColumns() {
	for col := range 4 {
		t0 := st[col]
		t1 := st[col+4]
		t2 := st[col+8]
		t3 := st[col+12]

		st[col] = Mul(t0, 2) ^ Mul(t1, 3) ^ t2 ^ t3
		st[col+4] = t0 ^ Mul(t1, 2) ^ Mul(t2, 3) ^ t3
		st[col+8] = t0 ^ t1 ^ Mul(t2, 2) ^ Mul(t3, 3)
		st[col+12] = Mul(t0, 3) ^ t1 ^ t2 ^ Mul(t3, 2)
	}
}
