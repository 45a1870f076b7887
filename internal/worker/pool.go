// Package worker runs background jobs on a fixed set of goroutines.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQueueFull  = errors.New("worker queue is full")
	ErrPoolClosed = errors.New("worker pool is stopped")
)

// JobStatus is the lifecycle state of a submitted job
type JobStatus string

const (
	JobQueued  JobStatus = "queued"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Task is the unit of work executed by the pool
type Task[T any] func(ctx context.Context) (T, error)

// Job tracks one submitted task
type Job[T any] struct {
	ID        uuid.UUID
	CreatedAt time.Time

	task Task[T]
	done chan struct{}

	mu         sync.RWMutex
	status     JobStatus
	result     T
	err        error
	finishedAt time.Time
}

// Snapshot is a point-in-time copy of a job's state
type Snapshot[T any] struct {
	ID         uuid.UUID  `json:"id"`
	Status     JobStatus  `json:"status"`
	Result     T          `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Wait blocks until the job finishes or ctx is done
func (j *Job[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-j.done:
		j.mu.RLock()
		defer j.mu.RUnlock()
		return j.result, j.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Snapshot returns the current state of the job
func (j *Job[T]) Snapshot() Snapshot[T] {
	j.mu.RLock()
	defer j.mu.RUnlock()

	s := Snapshot[T]{
		ID:        j.ID,
		Status:    j.status,
		Result:    j.result,
		CreatedAt: j.CreatedAt,
	}
	if j.err != nil {
		s.Error = j.err.Error()
	}
	if !j.finishedAt.IsZero() {
		at := j.finishedAt
		s.FinishedAt = &at
	}
	return s
}

func (j *Job[T]) finished() (time.Time, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.finishedAt, !j.finishedAt.IsZero()
}

func (j *Job[T]) setStatus(s JobStatus) {
	j.mu.Lock()
	j.status = s
	j.mu.Unlock()
}

func (j *Job[T]) complete(result T, err error) {
	j.mu.Lock()
	j.result = result
	j.err = err
	j.status = JobDone
	if err != nil {
		j.status = JobFailed
	}
	j.finishedAt = time.Now()
	j.mu.Unlock()
	close(j.done)
}

// Pool executes submitted tasks with bounded concurrency and a bounded queue
type Pool[T any] struct {
	logger *zap.Logger
	queue  chan *Job[T]
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	jobs   map[uuid.UUID]*Job[T]
	closed bool
}

// NewPool starts workers goroutines consuming a queue of queueSize jobs
func NewPool[T any](logger *zap.Logger, workers, queueSize int) *Pool[T] {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool[T]{
		logger: logger,
		queue:  make(chan *Job[T], queueSize),
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[uuid.UUID]*Job[T]),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
	return p
}

func (p *Pool[T]) run(worker int) {
	defer p.wg.Done()
	for job := range p.queue {
		p.execute(worker, job)
	}
}

func (p *Pool[T]) execute(worker int, job *Job[T]) {
	job.setStatus(JobRunning)

	var (
		result T
		err    error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("job panicked", zap.String("job_id", job.ID.String()), zap.Any("panic", r))
				err = errors.New("job panicked")
			}
		}()
		result, err = job.task(p.ctx)
	}()

	if err != nil {
		p.logger.Warn("job failed",
			zap.Int("worker", worker),
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
	}
	job.complete(result, err)
}

// Submit enqueues task without blocking
func (p *Pool[T]) Submit(task Task[T]) (*Job[T], error) {
	job := &Job[T]{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		task:      task,
		done:      make(chan struct{}),
		status:    JobQueued,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}

	select {
	case p.queue <- job:
		p.jobs[job.ID] = job
		return job, nil
	default:
		return nil, ErrQueueFull
	}
}

// Get looks up a job by id
func (p *Pool[T]) Get(id uuid.UUID) (*Job[T], bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	job, ok := p.jobs[id]
	return job, ok
}

// Prune forgets finished jobs older than olderThan and returns how many were removed
func (p *Pool[T]) Prune(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	p.mu.Lock()
	defer p.mu.Unlock()

	removed := 0
	for id, job := range p.jobs {
		if at, ok := job.finished(); ok && at.Before(cutoff) {
			delete(p.jobs, id)
			removed++
		}
	}
	return removed
}

// Stop closes the queue and waits for in-flight jobs until ctx is done,
// after which running tasks see their context cancelled.
func (p *Pool[T]) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}
