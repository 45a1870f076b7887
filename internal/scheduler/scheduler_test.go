package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCleaner struct{ calls chan struct{} }

func (f *fakeCleaner) Cleanup(ctx context.Context) (int, error) {
	f.calls <- struct{}{}
	return 1, nil
}

type fakePurger struct{}

func (fakePurger) DeleteExpired(ctx context.Context, now time.Time) (int64, error) { return 0, nil }

type fakePruner struct{}

func (fakePruner) Prune(time.Duration) int { return 0 }

func TestNew_RegistersJobs(t *testing.T) {
	s, err := New(DefaultConfig(), zap.NewNop(), &fakeCleaner{}, fakePurger{}, fakePruner{})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Entries())
}

func TestNew_SkipsNilDependencies(t *testing.T) {
	s, err := New(DefaultConfig(), zap.NewNop(), nil, fakePurger{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Entries())
}

func TestNew_InvalidSpec(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReceiptCleanupSpec = "not a spec"

	_, err := New(cfg, zap.NewNop(), &fakeCleaner{}, nil, nil)
	assert.Error(t, err)
}

func TestScheduler_RunsJob(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReceiptCleanupSpec = "@every 1s"
	cleaner := &fakeCleaner{calls: make(chan struct{}, 4)}

	s, err := New(cfg, zap.NewNop(), cleaner, nil, nil)
	require.NoError(t, err)
	s.Start()
	defer s.Stop(context.Background())

	select {
	case <-cleaner.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("cleanup job did not run")
	}
}
