package cache

import (
	"context"
	"time"
)

// noopCache luôn miss; dùng khi REDIS_HOST không được cấu hình
type noopCache struct{}

// NewNoop returns a Cache that stores nothing.
func NewNoop() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, interface{}) (bool, error)        { return false, nil }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error                       { return nil }
func (noopCache) DeletePattern(context.Context, string) error                   { return nil }
func (noopCache) Ping(context.Context) error                                    { return nil }
