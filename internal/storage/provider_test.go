package storage_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/atlaspos/pos-backend/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestProvider_LazyResolveAndCache(t *testing.T) {
	p := storage.NewProvider(storage.Config{
		Backend: storage.BackendFile,
		FileDir: t.TempDir(),
	})

	a1, err := p.Adapter()
	require.NoError(t, err)
	require.NotNil(t, a1)

	// Subsequent calls hand out the same instance.
	a2, err := p.Adapter()
	require.NoError(t, err)
	require.Same(t, a1, a2)
}

func TestProvider_RebindReplacesAdapter(t *testing.T) {
	ctx := context.Background()
	p := storage.NewProvider(storage.Config{
		Backend: storage.BackendFile,
		FileDir: t.TempDir(),
	})

	a1, err := p.Adapter()
	require.NoError(t, err)
	require.NoError(t, a1.Set(ctx, "k", json.RawMessage(`1`)))

	a2, err := p.Rebind("tenant-2")
	require.NoError(t, err)
	require.NotSame(t, a1, a2)
	require.Equal(t, "tenant-2", p.TenantID())

	// The old instance keeps working for in-flight callers.
	got, err := a1.Get(ctx, "k")
	require.NoError(t, err)
	require.JSONEq(t, `1`, string(got))

	// The provider now hands out the rebound adapter.
	a3, err := p.Adapter()
	require.NoError(t, err)
	require.Same(t, a2, a3)
}

func TestProvider_RedisBackendRequiresClient(t *testing.T) {
	p := storage.NewProvider(storage.Config{Backend: storage.BackendRedis})
	_, err := p.Adapter()
	require.Error(t, err)
}

func TestResolve_UnknownBackend(t *testing.T) {
	_, err := storage.Resolve(storage.Config{Backend: "mongodb"}, "t1")
	require.Error(t, err)
}
