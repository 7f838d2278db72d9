package encryption

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/aesctr/internal/aes"
	"github.com/idelchi/aesctr/internal/counter"
	"github.com/idelchi/aesctr/internal/logging"
	"github.com/idelchi/aesctr/internal/pool"
)

// DefaultChunkSize is the number of bytes one job reads, transforms and writes.
const DefaultChunkSize = 4 << 20

// Chunk is the byte range of the input handled by one job.
type Chunk struct {
	ID            int
	Offset        int64
	Length        int
	StartingBlock uint64
}

// Stats describes a finished transform.
type Stats struct {
	Bytes    int64
	Chunks   int
	Workers  int
	Duration time.Duration
}

// Engine runs the chunked CTR transform. It holds no per-run state and may be reused.
type Engine struct {
	schedule  *aes.Schedule
	iv        counter.Counter
	chunkSize int
	parallel  int
	log       *logrus.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithChunkSize sets the chunk size, which must be a positive multiple of 16.
func WithChunkSize(size int) Option {
	return func(e *Engine) {
		e.chunkSize = size
	}
}

// WithParallel sets the number of pool workers.
func WithParallel(workers int) Option {
	return func(e *Engine) {
		e.parallel = workers
	}
}

// WithLogger sets the logger for pool and chunk diagnostics.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.log = logger
		}
	}
}

// NewEngine creates an engine for the given schedule and base counter.
// It defaults to DefaultChunkSize and one worker per CPU.
func NewEngine(schedule *aes.Schedule, iv counter.Counter, opts ...Option) (*Engine, error) {
	engine := &Engine{
		schedule:  schedule,
		iv:        iv,
		chunkSize: DefaultChunkSize,
		parallel:  runtime.NumCPU(),
		log:       logging.Discard(),
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.chunkSize <= 0 || engine.chunkSize%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrChunkSize, engine.chunkSize)
	}

	if engine.parallel < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrParallel, engine.parallel)
	}

	return engine, nil
}

// ChunkSize returns the configured chunk size.
func (e *Engine) ChunkSize() int {
	return e.chunkSize
}

// Parallel returns the configured number of workers.
func (e *Engine) Parallel() int {
	return e.parallel
}

// Plan partitions size bytes into chunks. Only the last chunk may be shorter than the chunk size.
func (e *Engine) Plan(size int64) []Chunk {
	if size <= 0 {
		return nil
	}

	chunkSize := int64(e.chunkSize)
	count := (size + chunkSize - 1) / chunkSize
	chunks := make([]Chunk, count)

	for id := range chunks {
		offset := int64(id) * chunkSize

		chunks[id] = Chunk{
			ID:            id,
			Offset:        offset,
			Length:        int(min(chunkSize, size-offset)),
			StartingBlock: uint64(offset / aes.BlockSize), //nolint:gosec // offset is non-negative
		}
	}

	return chunks
}

// Transform reads size bytes from in, XORs them with the keystream and writes
// them to the same offsets of out. It returns once every job has finished.
// Chunks that were written before a failure are complete, but the run as a whole is not.
func (e *Engine) Transform(in io.ReadSeeker, out io.WriteSeeker, size int64) (Stats, error) {
	start := time.Now()
	chunks := e.Plan(size)

	e.log.WithFields(logrus.Fields{
		"bytes":      size,
		"chunks":     len(chunks),
		"chunk_size": e.chunkSize,
		"workers":    e.parallel,
	}).Debug("starting transform")

	if truncater, ok := out.(interface{ Truncate(size int64) error }); ok {
		if err := truncater.Truncate(size); err != nil {
			return Stats{}, fmt.Errorf("sizing output: %w", err)
		}
	}

	workers, err := pool.New(e.parallel, e.log)
	if err != nil {
		return Stats{}, fmt.Errorf("starting pool: %w", err)
	}

	buffers := newChunkBuffers(e.bufferSize(size))
	reader := &lockedReader{r: in}
	writer := &lockedWriter{w: out}

	for _, chunk := range chunks {
		if err := workers.Submit(e.job(chunk, buffers, reader, writer)); err != nil {
			return Stats{}, errors.Join(fmt.Errorf("submitting chunk %d: %w", chunk.ID, err), workers.Shutdown())
		}
	}

	if err := workers.Shutdown(); err != nil {
		return Stats{}, fmt.Errorf("transforming chunks: %w", err)
	}

	stats := Stats{
		Bytes:    size,
		Chunks:   len(chunks),
		Workers:  e.parallel,
		Duration: time.Since(start),
	}

	e.log.WithField("duration", stats.Duration).Debug("transform finished")

	return stats, nil
}

// bufferSize is the length of the chunk buffers for an input of size bytes.
// Inputs smaller than one chunk only need buffers of their own size.
func (e *Engine) bufferSize(size int64) int {
	return int(max(0, min(int64(e.chunkSize), size)))
}

// job returns the unit of work for one chunk.
func (e *Engine) job(chunk Chunk, buffers *chunkBuffers, reader *lockedReader, writer *lockedWriter) pool.Job {
	return func() error {
		bufp := buffers.get()
		defer buffers.put(bufp)

		buf := (*bufp)[:chunk.Length]

		if err := reader.readAt(buf, chunk.Offset); err != nil {
			return fmt.Errorf("chunk %d: %w", chunk.ID, err)
		}

		XORKeyStream(e.schedule, e.iv, chunk.StartingBlock, buf)

		if err := writer.writeAt(buf, chunk.Offset); err != nil {
			return fmt.Errorf("chunk %d: %w", chunk.ID, err)
		}

		return nil
	}
}
