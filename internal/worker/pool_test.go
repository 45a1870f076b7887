package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPool_RunsJob(t *testing.T) {
	p := NewPool[string](zap.NewNop(), 2, 4)
	defer p.Stop(context.Background())

	job, err := p.Submit(func(ctx context.Context) (string, error) {
		return "receipt.pdf", nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := job.Wait(ctx)

	require.NoError(t, err)
	assert.Equal(t, "receipt.pdf", got)

	snap := job.Snapshot()
	assert.Equal(t, JobDone, snap.Status)
	assert.NotNil(t, snap.FinishedAt)

	found, ok := p.Get(job.ID)
	assert.True(t, ok)
	assert.Same(t, job, found)
}

func TestPool_FailedJob(t *testing.T) {
	p := NewPool[int](zap.NewNop(), 1, 1)
	defer p.Stop(context.Background())

	job, err := p.Submit(func(ctx context.Context) (int, error) {
		return 0, errors.New("disk full")
	})
	require.NoError(t, err)

	_, err = job.Wait(context.Background())
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, JobFailed, job.Snapshot().Status)
	assert.Equal(t, "disk full", job.Snapshot().Error)
}

func TestPool_RecoversPanic(t *testing.T) {
	p := NewPool[int](zap.NewNop(), 1, 1)
	defer p.Stop(context.Background())

	job, err := p.Submit(func(ctx context.Context) (int, error) {
		panic("boom")
	})
	require.NoError(t, err)

	_, err = job.Wait(context.Background())
	assert.Error(t, err)
	assert.Equal(t, JobFailed, job.Snapshot().Status)
}

func TestPool_QueueFull(t *testing.T) {
	p := NewPool[int](zap.NewNop(), 1, 1)
	release := make(chan struct{})
	started := make(chan struct{})
	defer func() {
		close(release)
		p.Stop(context.Background())
	}()

	_, err := p.Submit(func(ctx context.Context) (int, error) {
		close(started)
		<-release
		return 1, nil
	})
	require.NoError(t, err)
	<-started

	_, err = p.Submit(func(ctx context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)

	_, err = p.Submit(func(ctx context.Context) (int, error) { return 3, nil })
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestJob_WaitHonoursContext(t *testing.T) {
	p := NewPool[int](zap.NewNop(), 1, 1)
	release := make(chan struct{})
	defer func() {
		close(release)
		p.Stop(context.Background())
	}()

	job, err := p.Submit(func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = job.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool[int](zap.NewNop(), 1, 1)
	require.NoError(t, p.Stop(context.Background()))

	_, err := p.Submit(func(ctx context.Context) (int, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_Prune(t *testing.T) {
	p := NewPool[int](zap.NewNop(), 1, 2)
	defer p.Stop(context.Background())

	job, err := p.Submit(func(ctx context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)
	_, err = job.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, p.Prune(time.Hour))
	assert.Equal(t, 1, p.Prune(0))

	_, ok := p.Get(job.ID)
	assert.False(t, ok)
}
