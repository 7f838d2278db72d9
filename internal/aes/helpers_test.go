package aes_test

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
)

// Vector is a single known-answer case from a YAML golden file.
type Vector struct {
	Description  string `yaml:"description"`
	Key          string `yaml:"key"`
	Plaintext    string `yaml:"plaintext,omitempty"`
	Ciphertext   string `yaml:"ciphertext,omitempty"`
	LastRoundKey string `yaml:"last_round_key,omitempty"`
}

// Group is a named collection of vectors.
type Group struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Cases       []Vector `yaml:"cases"`
}

func loadVectors(t *testing.T) []Group {
	t.Helper()

	files, err := filepath.Glob("testdata/*.yml")
	if err != nil {
		t.Fatalf("globbing testdata: %v", err)
	}

	if len(files) == 0 {
		t.Fatal("no testdata/*.yml files found")
	}

	var all []Group

	for _, f := range files {
		data, err := os.ReadFile(f) //nolint:gosec // test helper reads known testdata files
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}

		var groups []Group
		if err := yaml.Unmarshal(data, &groups); err != nil {
			t.Fatalf("parsing %s: %v", f, err)
		}

		all = append(all, groups...)
	}

	return all
}

// forEachVector runs fn for every vector accepted by keep.
func forEachVector(t *testing.T, keep func(Vector) bool, fn func(t *testing.T, v Vector)) {
	t.Helper()

	for _, g := range loadVectors(t) {
		t.Run(g.Name, func(t *testing.T) {
			t.Parallel()

			for _, v := range g.Cases {
				if !keep(v) {
					continue
				}

				t.Run(v.Description, func(t *testing.T) {
					t.Parallel()
					fn(t, v)
				})
			}
		})
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decoding %q: %v", s, err)
	}

	return b
}
