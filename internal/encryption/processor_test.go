package encryption_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/aesctr/internal/aes"
	"github.com/idelchi/aesctr/internal/config"
	"github.com/idelchi/aesctr/internal/encryption"
)

const (
	testKey128 = "000102030405060708090a0b0c0d0e0f"
	testKey256 = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	testIV     = "00112233445566778899aabbccddeeff"
)

func testConfig(key string) *config.Config {
	return &config.Config{
		Key:       config.Key{String: key},
		IV:        testIV,
		Parallel:  4,
		ChunkSize: 64,
	}
}

func TestNewProcessorConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")

	if err := os.WriteFile(keyFile, []byte(testKey256+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{
			name:   "unsupported key size",
			mutate: func(c *config.Config) { c.KeySize = 100 },
			want:   aes.ErrKeySize,
		},
		{
			name:   "key shorter than key size",
			mutate: func(c *config.Config) { c.KeySize = 256 },
			want:   aes.ErrKeyLength,
		},
		{
			name:   "key of no AES length",
			mutate: func(c *config.Config) { c.Key.String = "0011223344" },
			want:   aes.ErrKeySize,
		},
		{
			name:   "short IV",
			mutate: func(c *config.Config) { c.IV = "0011" },
			want:   encryption.ErrIVLength,
		},
		{
			name:   "IV not hex",
			mutate: func(c *config.Config) { c.IV = "zz112233445566778899aabbccddeeff" },
			want:   encryption.ErrIVLength,
		},
		{
			name:   "unaligned chunk size",
			mutate: func(c *config.Config) { c.ChunkSize = 100 },
			want:   encryption.ErrChunkSize,
		},
		{
			name:   "no workers",
			mutate: func(c *config.Config) { c.Parallel = 0 },
			want:   encryption.ErrParallel,
		},
		{
			name: "missing key file",
			mutate: func(c *config.Config) {
				c.Key = config.Key{File: filepath.Join(dir, "missing")}
			},
			want: os.ErrNotExist,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(testKey128)
			tc.mutate(cfg)

			if _, err := encryption.NewProcessor(cfg, nil); !errors.Is(err, tc.want) {
				t.Errorf("NewProcessor error = %v, want %v", err, tc.want)
			}
		})
	}

	t.Run("key file", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig("")
		cfg.Key.File = keyFile
		cfg.KeySize = 256

		if _, err := encryption.NewProcessor(cfg, nil); err != nil {
			t.Errorf("NewProcessor with key file: %v", err)
		}
	})
}

// TestProcessOpenSSLVector checks one block against
// `openssl enc -aes-128-ctr -K 0001..0f -iv 0011..ff` of "0123456789abcdef".
func TestProcessOpenSSLVector(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "test.txt")
	out := filepath.Join(dir, "test.txt.enc")

	if err := os.WriteFile(in, []byte("0123456789abcdef"), 0o600); err != nil {
		t.Fatal(err)
	}

	proc, err := encryption.NewProcessor(testConfig(testKey128), nil)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}

	if _, err := proc.Process(in, out); err != nil {
		t.Fatalf("Process: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	// The first keystream block is AES-128(key, iv), the FIPS-197 C.1 ciphertext.
	keystream, err := hex.DecodeString("69c4e0d86a7b0430d8cdb78070b4c55a")
	if err != nil {
		t.Fatal(err)
	}

	want := make([]byte, len(keystream))
	for i := range want {
		want[i] = "0123456789abcdef"[i] ^ keystream[i]
	}

	if !bytes.Equal(got, want) {
		t.Errorf("ciphertext = %x, want %x", got, want)
	}
}

func TestProcessRoundTrip(t *testing.T) {
	t.Parallel()

	for _, key := range []string{testKey128, testKey256} {
		dir := t.TempDir()
		plain := randomBytes(t, 1000)
		in := filepath.Join(dir, "plain")
		enc := filepath.Join(dir, "plain.enc")
		dec := filepath.Join(dir, "plain.dec")

		if err := os.WriteFile(in, plain, 0o600); err != nil {
			t.Fatal(err)
		}

		proc, err := encryption.NewProcessor(testConfig(key), nil)
		if err != nil {
			t.Fatalf("NewProcessor: %v", err)
		}

		result, err := proc.Process(in, enc)
		if err != nil {
			t.Fatalf("encrypting: %v", err)
		}

		if result.OutputSize != int64(len(plain)) || result.Chunks != 16 {
			t.Errorf("result = %+v", result)
		}

		if _, err := proc.Process(enc, dec); err != nil {
			t.Fatalf("decrypting: %v", err)
		}

		got, err := os.ReadFile(dec)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, plain) {
			t.Errorf("key %s: round trip mismatch", key)
		}
	}
}

func TestProcessEmptyInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "empty")
	out := filepath.Join(dir, "empty.enc")

	if err := os.WriteFile(in, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	proc, err := encryption.NewProcessor(testConfig(testKey128), nil)
	if err != nil {
		t.Fatal(err)
	}

	result, err := proc.Process(in, out)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output not created: %v", err)
	}

	if info.Size() != 0 || result.Chunks != 0 {
		t.Errorf("size = %d, chunks = %d, want 0 and 0", info.Size(), result.Chunks)
	}
}

func TestProcessInPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	plain := randomBytes(t, 333)

	if err := os.WriteFile(path, plain, 0o600); err != nil {
		t.Fatal(err)
	}

	proc, err := encryption.NewProcessor(testConfig(testKey256), nil)
	if err != nil {
		t.Fatal(err)
	}

	for range 2 {
		if _, err := proc.Process(path, path); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got, plain) {
		t.Error("two in-place transforms did not restore the file")
	}
}

func TestProcessMissingInputLeavesNoOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	proc, err := encryption.NewProcessor(testConfig(testKey128), nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := proc.Process(filepath.Join(dir, "missing"), out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Process error = %v, want ErrNotExist", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 0 {
		t.Errorf("directory not empty after failure: %v", entries)
	}
}
