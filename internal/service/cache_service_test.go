package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
)

type fakeCacheRepo struct {
	store   map[string][]byte
	deleted []string
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if f.store == nil {
		f.store = make(map[string][]byte)
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	f.deleted = append(f.deleted, pattern)
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := &fakeCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	var out []string
	require.False(t, svc.Get(context.Background(), "k", &out))

	svc.Set(context.Background(), "k", []string{"a", "b"})
	require.True(t, svc.Get(context.Background(), "k", &out))
	require.Equal(t, []string{"a", "b"}, out)

	svc.Invalidate(context.Background(), "k*")
	require.Equal(t, []string{"k*"}, repo.deleted)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := &fakeCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	svc.Set(context.Background(), "k", "v")
	var out string
	require.False(t, svc.Get(context.Background(), "k", &out))
	require.Empty(t, repo.store)
}

func TestCacheServiceNilReceiverSafe(t *testing.T) {
	var svc *CacheService
	var out string
	require.False(t, svc.Get(context.Background(), "k", &out))
	svc.Set(context.Background(), "k", "v")
	svc.Invalidate(context.Background(), "k*")
}
