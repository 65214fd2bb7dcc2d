package leaderboard

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-brawler/internal/storage"
)

// CacheState is the on-disk shape of the fallback table.
type CacheState struct {
	Entries []Entry `yaml:"entries"`
	Pending []Entry `yaml:"pending,omitempty"`
}

// Cache is the local YAML copy of the table. The file is read once; after
// that the in-memory state is authoritative and every Save rewrites the
// file.
type Cache struct {
	path string
	mem  *CacheState
}

// NewCache creates a cache backed by path. An empty path keeps the state in
// memory only.
func NewCache(path string) *Cache {
	if p, err := storage.ExpandHome(path); err == nil {
		path = p
	}
	return &Cache{path: path}
}

// Path returns the expanded cache file path.
func (c *Cache) Path() string { return c.path }

// Load returns a copy of the cached state. A missing or unreadable file
// yields an empty table.
func (c *Cache) Load() *CacheState {
	if c.mem == nil {
		c.mem = &CacheState{}
		if st, err := readCache(c.path); err == nil {
			c.mem = st
		}
	}
	return &CacheState{
		Entries: clone(c.mem.Entries),
		Pending: clone(c.mem.Pending),
	}
}

// Save replaces the state and writes it to disk.
func (c *Cache) Save(st *CacheState) error {
	c.mem = &CacheState{Entries: clone(st.Entries), Pending: clone(st.Pending)}
	if c.path == "" {
		return nil
	}

	data, err := yaml.Marshal(c.mem)
	if err != nil {
		return fmt.Errorf("leaderboard: encode cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("leaderboard: create cache dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("leaderboard: write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("leaderboard: replace cache: %w", err)
	}
	return nil
}

func readCache(path string) (*CacheState, error) {
	if path == "" {
		return nil, fs.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var st CacheState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("leaderboard: parse cache %s: %w", path, err)
	}
	return &st, nil
}
