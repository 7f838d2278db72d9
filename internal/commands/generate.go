package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/aesctr/internal/aes"
	"github.com/idelchi/aesctr/internal/config"
	"github.com/idelchi/aesctr/internal/counter"
)

// NewGenerateCommand creates a command printing a random key and IV.
func NewGenerateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a random key and IV",
		Long: `Print a random hex key followed by a random hex IV, one per line.
The key size follows --key-size and defaults to 256 bits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bits := cfg.KeySize
			if bits == 0 {
				bits = int(aes.AES256)
			}

			size, err := aes.ParseKeySize(bits)
			if err != nil {
				return err
			}

			key := make([]byte, size.Bytes())
			if _, err := rand.Read(key); err != nil {
				return fmt.Errorf("generating key: %w", err)
			}

			iv := make([]byte, counter.Size)
			if _, err := rand.Read(iv); err != nil {
				return fmt.Errorf("generating IV: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(key))
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(iv))

			return nil
		},
	}
}
