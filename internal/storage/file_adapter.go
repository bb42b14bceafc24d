package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileAdapter stores one JSON file per key inside a data directory, writing
// through a temp file and rename so a crash never leaves a torn document.
// When a desktop host socket is reachable, every operation is delegated to the
// host process instead; the fallback to local files is invisible to callers.
type FileAdapter struct {
	dir  string
	host *hostClient // nil when running without a desktop host

	mu sync.Mutex // serialises Clear against concurrent writes
}

const fileExt = ".json"

// NewFileAdapter creates a file-backed adapter rooted at dir. If hostSocket
// names a reachable unix socket, operations delegate to the desktop host.
func NewFileAdapter(dir, hostSocket string) (*FileAdapter, error) {
	a := &FileAdapter{dir: dir}
	if hostSocket != "" {
		if hc := dialHost(hostSocket); hc != nil {
			a.host = hc
			return a, nil
		}
		// Host configured but not reachable: fall back to local files.
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create file store dir: %w", err)
	}
	return a, nil
}

var _ Adapter = (*FileAdapter)(nil)

func (a *FileAdapter) path(key string) string {
	return filepath.Join(a.dir, url.PathEscape(key)+fileExt)
}

func (a *FileAdapter) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if a.host != nil {
		return a.host.get(ctx, key)
	}
	data, err := os.ReadFile(a.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (a *FileAdapter) Set(ctx context.Context, key string, value json.RawMessage) error {
	if a.host != nil {
		return a.host.set(ctx, key, value)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	tmp, err := os.CreateTemp(a.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, a.path(key))
}

func (a *FileAdapter) Remove(ctx context.Context, key string) error {
	if a.host != nil {
		return a.host.remove(ctx, key)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	err := os.Remove(a.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (a *FileAdapter) Clear(ctx context.Context) error {
	if a.host != nil {
		return a.host.clear(ctx)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		if err := os.Remove(filepath.Join(a.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (a *FileAdapter) Keys(ctx context.Context) ([]string, error) {
	if a.host != nil {
		return a.host.keys(ctx)
	}
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue // not one of ours
		}
		keys = append(keys, key)
	}
	return keys, nil
}
