package encryption

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/gogen/pkg/key"

	"github.com/idelchi/aesctr/internal/aes"
	"github.com/idelchi/aesctr/internal/config"
	"github.com/idelchi/aesctr/internal/counter"
	"github.com/idelchi/aesctr/internal/fileutil"
	"github.com/idelchi/aesctr/internal/logging"
)

// Processor binds a validated configuration to an Engine.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// engine performs the chunked transform
	engine *Engine

	log *logrus.Logger
}

// NewProcessor decodes the key and IV, expands the key schedule and builds the engine.
// Every configuration error is reported here, before any file is opened for writing.
func NewProcessor(cfg *config.Config, logger *logrus.Logger) (*Processor, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	encryptionKey, err := readKey(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	schedule, err := newSchedule(cfg.KeySize, encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("expanding key: %w", err)
	}

	iv, err := parseIV(cfg.IV)
	if err != nil {
		return nil, err
	}

	engine, err := NewEngine(schedule, iv,
		WithChunkSize(cfg.ChunkSize),
		WithParallel(cfg.Parallel),
		WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"key_size": schedule.KeySize(),
		"rounds":   schedule.Rounds(),
	}).Debug("key schedule ready")

	return &Processor{cfg: cfg, engine: engine, log: logger}, nil
}

// Engine exposes the underlying engine.
func (p *Processor) Engine() *Engine {
	return p.engine
}

// Process transforms input into output through a temporary file that is renamed
// onto output only once every chunk has been written.
//
//nolint:nonamedreturns // err is inspected by the deferred cleanup
func (p *Processor) Process(input, output string) (result Result, err error) {
	tc, err := fileutil.NewTempContext(input, output)
	if err != nil {
		return Result{}, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(input))
	if err != nil {
		return Result{}, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	stats, err := p.engine.Transform(inFile, tc.TmpFile, tc.SrcInfo.Size())
	if err != nil {
		return Result{}, fmt.Errorf("transforming %q: %w", input, err)
	}

	if err := inFile.Close(); err != nil {
		return Result{}, fmt.Errorf("closing input file: %w", err)
	}

	size, err := tc.Commit(p.cfg.PreserveTimestamps)
	if err != nil {
		return Result{}, fmt.Errorf("finalizing output: %w", err)
	}

	return Result{
		Input:      input,
		Output:     output,
		OutputSize: size,
		Chunks:     stats.Chunks,
		Duration:   stats.Duration,
	}, nil
}

// readKey decodes the key from the flag value or the key file.
func readKey(k config.Key) ([]byte, error) {
	raw := k.String

	if k.File != "" {
		data, err := os.ReadFile(k.File)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		raw = string(data)
	}

	return key.FromHex(strings.TrimSpace(raw))
}

// newSchedule expands encryptionKey, enforcing bits when it is non-zero.
func newSchedule(bits int, encryptionKey []byte) (*aes.Schedule, error) {
	if bits == 0 {
		return aes.NewSchedule(encryptionKey)
	}

	size, err := aes.ParseKeySize(bits)
	if err != nil {
		return nil, err
	}

	return aes.NewScheduleSize(size, encryptionKey)
}

func parseIV(s string) (counter.Counter, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return counter.Counter{}, fmt.Errorf("%w: %w", ErrIVLength, err)
	}

	iv, err := counter.FromBytes(raw)
	if err != nil {
		return counter.Counter{}, fmt.Errorf("%w: %w", ErrIVLength, err)
	}

	return iv, nil
}
