package counter_test

import (
	"bytes"
	"errors"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/idelchi/aesctr/internal/counter"
)

func filled(b byte) counter.Counter {
	var c counter.Counter

	for i := range c {
		c[i] = b
	}

	return c
}

func TestIncrement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    counter.Counter
		delta uint64
		want  counter.Counter
	}{
		{
			name:  "wraps at 2^128",
			in:    filled(0xff),
			delta: 1,
			want:  counter.Counter{},
		},
		{
			name:  "256 carries into byte 14",
			in:    counter.Counter{},
			delta: 256,
			want:  counter.Counter{14: 0x01},
		},
		{
			name:  "zero delta",
			in:    counter.Counter{3: 0xaa, 15: 0x01},
			delta: 0,
			want:  counter.Counter{3: 0xaa, 15: 0x01},
		},
		{
			name:  "carry ripples through ff bytes",
			in:    counter.Counter{7: 0x01, 8: 0xff, 9: 0xff, 10: 0xff, 11: 0xff, 12: 0xff, 13: 0xff, 14: 0xff, 15: 0xff},
			delta: 1,
			want:  counter.Counter{7: 0x02},
		},
		{
			name:  "max delta",
			in:    counter.Counter{15: 0x01},
			delta: ^uint64(0),
			want:  counter.Counter{7: 0x01},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := counter.Increment(tc.in, tc.delta); got != tc.want {
				t.Errorf("Increment(%x, %d) = %x, want %x", tc.in, tc.delta, got, tc.want)
			}
		})
	}
}

// TestDeriveMatchesBigInt checks Derive against math/big modular addition.
func TestDeriveMatchesBigInt(t *testing.T) {
	t.Parallel()

	modulus := new(big.Int).Lsh(big.NewInt(1), 128)

	for range 1000 {
		var base counter.Counter

		for i := range base {
			base[i] = byte(rand.IntN(256))
		}

		index := rand.Uint64()

		want := new(big.Int).SetBytes(base[:])
		want.Add(want, new(big.Int).SetUint64(index))
		want.Mod(want, modulus)

		got := counter.Derive(base, index)

		wantBytes := want.FillBytes(make([]byte, counter.Size))
		if !bytes.Equal(got[:], wantBytes) {
			t.Fatalf("Derive(%x, %d) = %x, want %x", base, index, got, wantBytes)
		}
	}
}

func TestDeriveIsIndependentOfOrder(t *testing.T) {
	t.Parallel()

	base := counter.Counter{15: 0xf0}
	running := base

	for i := range uint64(300) {
		if got := counter.Derive(base, i); got != running {
			t.Fatalf("block %d: Derive = %x, running counter = %x", i, got, running)
		}

		running = counter.Increment(running, 1)
	}
}

func TestFromBytes(t *testing.T) {
	t.Parallel()

	raw := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}

	c, err := counter.FromBytes(raw)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	if !bytes.Equal(c[:], raw) {
		t.Errorf("FromBytes = %x, want %x", c, raw)
	}

	for _, n := range []int{0, 12, 15, 17, 32} {
		if _, err := counter.FromBytes(make([]byte, n)); !errors.Is(err, counter.ErrSize) {
			t.Errorf("FromBytes(%d bytes) error = %v, want ErrSize", n, err)
		}
	}
}
