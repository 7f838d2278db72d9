package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/aesctr/internal/config"
	"github.com/idelchi/aesctr/internal/encryption"
)

// NewRootCommand creates the root command with common configuration.
// Its persistent flags are shared by every subcommand.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "aesctr [flags] command [flags]"
	root.Short = "Parallel AES-CTR file encryption"
	root.Long = `A file encryption utility implementing AES-128/192/256 in CTR mode.
Files are split into chunks that are encrypted in parallel. Encryption and
decryption are the same operation; output is byte-compatible with
"openssl enc -aes-<bits>-ctr -K <key> -iv <iv>".

Every flag can also be set through an AESCTR_ environment variable
(e.g. AESCTR_KEY_FILE) or a JSONC file passed with --config.`
	root.SilenceErrors = true
	root.SilenceUsage = true

	// Replaces the default hook, which binds the global viper instance.
	// Each run loads into cfg through its own viper so commands stay independent.
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return config.Load(cmd.Flags(), cfg)
	}

	flags := root.PersistentFlags()

	flags.Bool("show", false, "Show the configuration and exit")
	flags.String("config", "", "Path to a JSONC file with default flag values")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.Int("chunk-size", encryption.DefaultChunkSize, "Bytes per job, a multiple of 16")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("verbose", false, "Enable debug logging")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.Bool("dry", false, "Show what would be processed without writing anything")
	flags.BoolP("delete", "d", false, "Delete the input file after successful processing")
	flags.Bool("preserve-timestamps", false, "Copy the input modification time to the output")

	flags.StringP("key", "k", "", "Encryption key (16, 24 or 32 bytes, hex-encoded)")
	flags.StringP("key-file", "f", "", "Path to the key file with the encryption key (hex-encoded)")
	flags.IntP("key-size", "s", 0, "Key size in bits (128, 192 or 256), inferred from the key when 0")
	flags.StringP("iv", "v", "", "Initial counter block (16 bytes, hex-encoded)")
	flags.StringP("input", "i", "", "Input file")
	flags.StringP("output", "o", "", "Output file, derived from the input when empty")

	flags.String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewGenerateCommand(cfg),
		NewSelftestCommand(cfg),
	)

	return root
}
