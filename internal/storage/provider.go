package storage

import (
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Backend names for explicit adapter selection.
const (
	BackendRedis = "redis"
	BackendPgsql = "pgsql"
	BackendFile  = "file"
)

// Config carries everything the factory needs to construct any adapter.
// Only the fields relevant to the resolved backend have to be populated.
type Config struct {
	Backend     string // explicit choice; empty means auto-detect
	RedisClient *redis.Client
	RedisPrefix string
	Pool        *pgxpool.Pool
	FileDir     string
	HostSocket  string // desktop host unix socket, probed during auto-detect
}

// Resolve constructs the adapter for tenantID. Resolution order: a reachable
// desktop host wins, then the explicitly configured backend, then redis as the
// default local-persistent store.
func Resolve(cfg Config, tenantID string) (Adapter, error) {
	if cfg.Backend == "" && cfg.HostSocket != "" {
		// Auto-detect only wins when the host actually answers; an unreachable
		// socket falls through to the configured or default backend.
		if hc := dialHost(cfg.HostSocket); hc != nil {
			return &FileAdapter{host: hc}, nil
		}
	}

	backend := cfg.Backend
	if backend == "" {
		backend = BackendRedis
	}

	switch backend {
	case BackendRedis:
		if cfg.RedisClient == nil {
			return nil, fmt.Errorf("redis backend selected but no redis client configured")
		}
		return NewRedisAdapter(cfg.RedisClient, cfg.RedisPrefix), nil
	case BackendPgsql:
		if cfg.Pool == nil {
			return nil, fmt.Errorf("pgsql backend selected but no connection pool configured")
		}
		return NewPgsqlAdapter(cfg.Pool, tenantID), nil
	case BackendFile:
		return NewFileAdapter(cfg.FileDir, cfg.HostSocket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Provider hands out the process's current adapter. The tenant id is usually
// discovered only after login, so the provider supports rebinding: Rebind
// replaces the cached adapter with one bound to the new tenant while in-flight
// operations on the previous instance run to completion.
type Provider struct {
	cfg Config

	mu       sync.RWMutex
	adapter  Adapter
	tenantID string
}

// NewProvider creates a provider; the adapter is built lazily on first use.
func NewProvider(cfg Config) *Provider {
	return &Provider{cfg: cfg}
}

// Adapter returns the cached adapter, resolving it on first call.
func (p *Provider) Adapter() (Adapter, error) {
	p.mu.RLock()
	if p.adapter != nil {
		a := p.adapter
		p.mu.RUnlock()
		return a, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.adapter == nil {
		a, err := Resolve(p.cfg, p.tenantID)
		if err != nil {
			return nil, err
		}
		p.adapter = a
	}
	return p.adapter, nil
}

// Rebind discards the cached adapter and builds one bound to tenantID.
func (p *Provider) Rebind(tenantID string) (Adapter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, err := Resolve(p.cfg, tenantID)
	if err != nil {
		return nil, err
	}
	p.tenantID = tenantID
	p.adapter = a
	return a, nil
}

// TenantID reports the tenant the current adapter is bound to.
func (p *Provider) TenantID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tenantID
}
