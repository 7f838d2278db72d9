// Package logic implements the run flow of the encrypt and decrypt commands.
package logic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/aesctr/internal/config"
	"github.com/idelchi/aesctr/internal/encryption"
)

// Run is the main logic of the application.
func Run(cfg *config.Config, logger *logrus.Logger) error {
	start := time.Now()

	output, err := OutputPath(cfg)
	if err != nil {
		return err
	}

	proc, err := encryption.NewProcessor(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	if cfg.Dry {
		return dryRun(cfg, proc, output)
	}

	result, err := proc.Process(cfg.Input, output)
	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	if !cfg.Quiet {
		fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo
	}

	if cfg.Delete && !samePath(cfg.Input, output) {
		if err := os.Remove(cfg.Input); err != nil {
			return fmt.Errorf("deleting %q: %w", cfg.Input, err)
		}

		if !cfg.Quiet {
			fmt.Printf("Deleted %q\n", cfg.Input) //nolint:forbidigo
		}
	}

	if cfg.Stats {
		printStats(result, proc.Engine(), time.Since(start))
	}

	return nil
}

// OutputPath returns the explicit output path or derives one from the input:
// encryption appends the encrypt suffix, decryption strips it and appends the decrypt suffix.
func OutputPath(cfg *config.Config) (string, error) {
	if cfg.Output != "" {
		return cfg.Output, nil
	}

	filename := cfg.Input
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	output := filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)

	if samePath(cfg.Input, output) {
		return "", fmt.Errorf("%w: %q, pass --output to transform in place", config.ErrSamePath, output)
	}

	return output, nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// dryRun previews the chunk layout without opening the output.
func dryRun(cfg *config.Config, proc *encryption.Processor, output string) error {
	info, err := os.Stat(cfg.Input)
	if err != nil {
		return fmt.Errorf("stat %q: %w", cfg.Input, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %q", encryption.ErrNotRegular, cfg.Input)
	}

	engine := proc.Engine()
	chunks := engine.Plan(info.Size())

	fmt.Printf("Would process %q -> %q\n", cfg.Input, output) //nolint:forbidigo

	if !cfg.Quiet {
		//nolint:gosec // sizes are non-negative
		fmt.Printf("  %s in %d chunk(s) of %s on %d worker(s)\n", //nolint:forbidigo
			humanize.IBytes(uint64(info.Size())), len(chunks),
			humanize.IBytes(uint64(engine.ChunkSize())), engine.Parallel())
	}

	return nil
}

func printStats(result encryption.Result, engine *encryption.Engine, duration time.Duration) {
	var throughput string

	if seconds := result.Duration.Seconds(); seconds > 0 {
		//nolint:gosec // OutputSize is always non-negative
		throughput = humanize.IBytes(uint64(float64(result.OutputSize)/seconds)) + "/s"
	}

	fmt.Fprintf(os.Stderr, "\nStats\n")
	//nolint:gosec // OutputSize is always non-negative
	fmt.Fprintf(os.Stderr, "  Size:       %s\n", humanize.IBytes(uint64(max(0, result.OutputSize))))
	fmt.Fprintf(os.Stderr, "  Chunks:     %d\n", result.Chunks)
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", engine.Parallel())
	fmt.Fprintf(os.Stderr, "  Throughput: %s\n", throughput)
	fmt.Fprintf(os.Stderr, "  Duration:   %s\n", duration.Round(time.Millisecond))
}
