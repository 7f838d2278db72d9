// Package pool provides a fixed-size worker pool scoped to a single run.
//
// Workers are started once and drain one unbounded FIFO queue. Submission
// never blocks and returns no completion handle; callers learn that every job
// finished, and whether any failed, only from Shutdown.
package pool

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/aesctr/internal/logging"
)

var (
	// ErrSize is returned when a pool is created with fewer than one worker.
	ErrSize = errors.New("pool needs at least one worker")
	// ErrClosed is returned when a job is submitted after Shutdown.
	ErrClosed = errors.New("pool is shut down")
	// ErrPanic wraps the value recovered from a panicking job.
	ErrPanic = errors.New("job panicked")
)

// Job is one opaque unit of work.
type Job func() error

// Stats counts jobs over the lifetime of a pool.
type Stats struct {
	Submitted int64
	Completed int64
	Failed    int64
	Discarded int64
}

// Pool runs submitted jobs on a fixed set of workers.
type Pool struct {
	log  *logrus.Logger
	size int

	mu     sync.Mutex
	ready  *sync.Cond
	queue  []Job
	closed bool

	group    errgroup.Group
	shutdown sync.Once
	err      error

	// workerErrs[id] holds the joined job errors of worker id once it has exited.
	workerErrs []error

	// failed is set by the first failing job; queued jobs are discarded afterwards.
	failed atomic.Bool

	submitted atomic.Int64
	completed atomic.Int64
	errored   atomic.Int64
	discarded atomic.Int64
}

// New starts size workers. A nil logger discards worker diagnostics.
func New(size int, logger *logrus.Logger) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrSize, size)
	}

	if logger == nil {
		logger = logging.Discard()
	}

	p := &Pool{log: logger, size: size, workerErrs: make([]error, size)}
	p.ready = sync.NewCond(&p.mu)

	for id := range size {
		p.group.Go(func() error {
			return p.work(id)
		})
	}

	logger.WithField("workers", size).Debug("pool started")

	return p, nil
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Submit enqueues job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	p.queue = append(p.queue, job)
	p.submitted.Add(1)
	p.ready.Signal()

	return nil
}

// Shutdown closes the queue, waits for the workers to drain it and exit,
// and returns every job error joined together. Calling it again returns the same result.
func (p *Pool) Shutdown() error {
	p.shutdown.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.ready.Broadcast()
		p.mu.Unlock()

		// Wait reports only the first failing worker; collect the rest from their slots.
		if err := p.group.Wait(); err != nil {
			p.err = errors.Join(p.workerErrs...)
		}

		stats := p.Stats()

		p.log.WithFields(logrus.Fields{
			"completed": stats.Completed,
			"failed":    stats.Failed,
			"discarded": stats.Discarded,
		}).Debug("pool stopped")
	})

	return p.err
}

// Stats returns a snapshot of the job counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.errored.Load(),
		Discarded: p.discarded.Load(),
	}
}

// next blocks until a job is available or the queue is closed and empty.
func (p *Pool) next() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.ready.Wait()
	}

	if len(p.queue) == 0 {
		return nil, false
	}

	job := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]

	return job, true
}

// work is the loop of one worker. It returns the errors of the jobs it ran.
func (p *Pool) work(id int) error {
	var errs []error

	for {
		job, ok := p.next()
		if !ok {
			p.log.WithField("worker", id).Debug("worker terminated")

			p.workerErrs[id] = errors.Join(errs...)

			return p.workerErrs[id]
		}

		if p.failed.Load() {
			p.discarded.Add(1)

			continue
		}

		if err := run(job); err != nil {
			p.failed.Store(true)
			p.errored.Add(1)

			errs = append(errs, err)

			continue
		}

		p.completed.Add(1)
	}
}

// run executes job, turning a panic into an error.
func run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return job()
}
