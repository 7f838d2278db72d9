// Package selftest runs known-answer tests against the cipher before it is trusted with data.
package selftest

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tink-crypto/tink-go/v2/aead/subtle"

	"github.com/idelchi/aesctr/internal/aes"
	"github.com/idelchi/aesctr/internal/counter"
	"github.com/idelchi/aesctr/internal/encryption"
	"github.com/idelchi/aesctr/internal/logging"
)

// ErrMismatch is returned when a computed value differs from the expected one.
var ErrMismatch = errors.New("self-test mismatch")

// Check is one named self-test.
type Check struct {
	Name string
	Run  func() error
}

// vector is a FIPS-197 Appendix C example.
type vector struct {
	key, plaintext, ciphertext string
}

//nolint:gochecknoglobals // fixed test vectors
var fips197 = []vector{
	{
		key:        "000102030405060708090a0b0c0d0e0f",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "69c4e0d86a7b0430d8cdb78070b4c55a",
	},
	{
		key:        "000102030405060708090a0b0c0d0e0f1011121314151617",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "dda97ca4864cdfe06eaf70a0ec0d7191",
	},
	{
		key:        "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "8ea2b7ca516745bfeafc49904b496089",
	},
}

// Checks returns every self-test in the order they run.
func Checks() []Check {
	return []Check{
		{Name: "sbox", Run: checkSBox},
		{Name: "fips197", Run: checkFIPS197},
		{Name: "counter", Run: checkCounter},
		{Name: "tink-ctr", Run: checkTink},
	}
}

// Run executes every check, logging each outcome, and returns all failures joined.
func Run(logger *logrus.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}

	var errs []error

	for _, check := range Checks() {
		entry := logger.WithField("check", check.Name)

		if err := check.Run(); err != nil {
			entry.WithError(err).Error("self-test failed")

			errs = append(errs, fmt.Errorf("%s: %w", check.Name, err))

			continue
		}

		entry.Info("self-test passed")
	}

	return errors.Join(errs...)
}

func checkSBox() error {
	table := aes.SBox()

	for _, tc := range []struct{ in, want byte }{{0x00, 0x63}, {0x01, 0x7c}, {0x53, 0xed}, {0xff, 0x16}} {
		if table[tc.in] != tc.want {
			return fmt.Errorf("%w: sbox[%#02x] = %#02x, want %#02x", ErrMismatch, tc.in, table[tc.in], tc.want)
		}
	}

	return nil
}

func checkFIPS197() error {
	for _, v := range fips197 {
		key, _ := hex.DecodeString(v.key)
		plaintext, _ := hex.DecodeString(v.plaintext)

		schedule, err := aes.NewSchedule(key)
		if err != nil {
			return err
		}

		out := make([]byte, aes.BlockSize)
		schedule.Encrypt(out, plaintext)

		if got := hex.EncodeToString(out); got != v.ciphertext {
			return fmt.Errorf("%w: AES-%d gave %s, want %s", ErrMismatch, schedule.KeySize(), got, v.ciphertext)
		}
	}

	return nil
}

func checkCounter() error {
	var ones counter.Counter

	for i := range ones {
		ones[i] = 0xff
	}

	if got := counter.Increment(ones, 1); got != (counter.Counter{}) {
		return fmt.Errorf("%w: ff..ff + 1 = %x", ErrMismatch, got)
	}

	if got := counter.Increment(counter.Counter{}, 256); got != (counter.Counter{14: 0x01}) {
		return fmt.Errorf("%w: 0 + 256 = %x", ErrMismatch, got)
	}

	return nil
}

// checkTink compares the keystream with Tink's AES-CTR for random keys, IVs and data.
// Tink supports 128- and 256-bit keys only.
func checkTink() error {
	const dataLen = 1000 + 7

	for _, keyLen := range []int{16, 32} {
		key := make([]byte, keyLen)
		iv := make([]byte, counter.Size)
		data := make([]byte, dataLen)

		for _, b := range [][]byte{key, iv, data} {
			if _, err := rand.Read(b); err != nil {
				return fmt.Errorf("generating test data: %w", err)
			}
		}

		reference, err := subtle.NewAESCTR(key, counter.Size)
		if err != nil {
			return fmt.Errorf("creating Tink AES-CTR: %w", err)
		}

		// Tink's Decrypt takes IV || ciphertext; XOR is symmetric so it yields our ciphertext.
		want, err := reference.Decrypt(append(bytes.Clone(iv), data...))
		if err != nil {
			return fmt.Errorf("running Tink AES-CTR: %w", err)
		}

		schedule, err := aes.NewSchedule(key)
		if err != nil {
			return err
		}

		base, err := counter.FromBytes(iv)
		if err != nil {
			return err
		}

		got := bytes.Clone(data)
		encryption.XORKeyStream(schedule, base, 0, got)

		if !bytes.Equal(got, want) {
			return fmt.Errorf("%w: AES-%d keystream differs from Tink", ErrMismatch, keyLen*8)
		}
	}

	return nil
}
