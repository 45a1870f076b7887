package cache

import (
	"context"
	"time"
)

// Noop is used when Redis is not available; every lookup misses
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) InvalidatePrefix(context.Context, string) error        { return nil }
