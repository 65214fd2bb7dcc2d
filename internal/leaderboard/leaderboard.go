// Package leaderboard keeps the high score table. Scores go to a primary
// backend (the sqlite store); when the backend is missing or failing, the
// board serves and updates a local YAML cache instead, and replays the
// cached submissions once the backend answers again. Failures are logged,
// never returned to the player.
package leaderboard

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/storage"
)

// AnonymousName replaces empty names.
const AnonymousName = "ANON"

// Entry is one row of the table.
type Entry struct {
	Name  string    `yaml:"name"`
	Score int       `yaml:"score"`
	At    time.Time `yaml:"at,omitempty"`
}

// Backend is the primary score store. *storage.Store satisfies it.
type Backend interface {
	SaveScore(ctx context.Context, name string, score int) (int64, error)
	TopScores(ctx context.Context, limit int) ([]storage.ScoreEntry, error)
}

var _ Backend = (*storage.Store)(nil)

// Board accepts submissions and answers top-N queries.
type Board struct {
	backend    Backend
	cache      *Cache
	topN       int
	maxNameLen int
	logger     *log.Logger
	now        func() time.Time

	mu sync.Mutex
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger used for degraded-mode warnings.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// WithClock replaces time.Now for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// New creates a board over backend, which may be nil for cache-only use.
// An empty cfg.CachePath disables the cache file; the board then keeps its
// fallback table in memory.
func New(backend Backend, cfg config.LeaderboardConfig, opts ...Option) *Board {
	b := &Board{
		backend:    backend,
		cache:      NewCache(cfg.CachePath),
		topN:       cfg.TopN,
		maxNameLen: cfg.MaxNameLen,
		logger:     log.New(io.Discard),
		now:        time.Now,
	}
	if b.topN <= 0 {
		b.topN = 10
	}
	if b.maxNameLen <= 0 {
		b.maxNameLen = 12
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// MaxNameLen returns the configured name length limit.
func (b *Board) MaxNameLen() int { return b.maxNameLen }

// Normalize applies NormalizeName with the board's name length limit.
func (b *Board) Normalize(name string) string {
	return NormalizeName(name, b.maxNameLen)
}

// NormalizeName trims name and clips it to maxLen runes. An empty result
// becomes AnonymousName.
func NormalizeName(name string, maxLen int) string {
	name = strings.TrimSpace(name)
	if maxLen > 0 && utf8.RuneCountInString(name) > maxLen {
		name = strings.TrimSpace(string([]rune(name)[:maxLen]))
	}
	if name == "" {
		return AnonymousName
	}
	return name
}

// Submit records a score and returns the current top entries. The error is
// non-nil only when ctx is already done; backend and cache failures degrade
// silently.
func (b *Board) Submit(ctx context.Context, name string, score int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	e := Entry{Name: NormalizeName(name, b.maxNameLen), Score: score, At: b.now()}
	state := b.cache.Load()

	if b.backend != nil {
		b.flushPending(ctx, state)
		if _, err := b.backend.SaveScore(ctx, e.Name, e.Score); err != nil {
			b.logger.Warn("leaderboard backend unavailable, caching score", "name", e.Name, "score", e.Score, "err", err)
			state.Pending = append(state.Pending, e)
		} else if top, err := b.fetch(ctx); err == nil {
			state.Entries = top
			b.save(state)
			return clone(top), nil
		}
	}

	state.Entries = insert(state.Entries, e, b.topN)
	b.save(state)
	return clone(state.Entries), nil
}

// Top returns up to n entries, highest first. n <= 0 means the configured
// size.
func (b *Board) Top(ctx context.Context, n int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if n <= 0 {
		n = b.topN
	}
	state := b.cache.Load()
	if b.backend != nil {
		b.flushPending(ctx, state)
		if top, err := b.fetch(ctx); err == nil {
			state.Entries = top
			b.save(state)
			return clone(head(top, n)), nil
		}
	}
	return clone(head(state.Entries, n)), nil
}

func (b *Board) fetch(ctx context.Context) ([]Entry, error) {
	rows, err := b.backend.TopScores(ctx, b.topN)
	if err != nil {
		b.logger.Warn("leaderboard backend query failed, serving cache", "err", err)
		return nil, err
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, Entry{Name: r.Name, Score: r.Score, At: r.CreatedAt})
	}
	return out, nil
}

// flushPending replays cached submissions. Entries that still fail stay
// pending.
func (b *Board) flushPending(ctx context.Context, state *CacheState) {
	if len(state.Pending) == 0 {
		return
	}
	var left []Entry
	for _, p := range state.Pending {
		if _, err := b.backend.SaveScore(ctx, p.Name, p.Score); err != nil {
			left = append(left, p)
		}
	}
	if n := len(state.Pending) - len(left); n > 0 {
		b.logger.Info("replayed cached scores", "count", n)
	}
	state.Pending = left
}

func (b *Board) save(state *CacheState) {
	if err := b.cache.Save(state); err != nil {
		b.logger.Warn("leaderboard cache write failed", "path", b.cache.Path(), "err", err)
	}
}

// insert places e after every entry with an equal or higher score and keeps
// at most n entries.
func insert(entries []Entry, e Entry, n int) []Entry {
	i := 0
	for i < len(entries) && entries[i].Score >= e.Score {
		i++
	}
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries[:i]...)
	out = append(out, e)
	out = append(out, entries[i:]...)
	return head(out, n)
}

func head(entries []Entry, n int) []Entry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func clone(entries []Entry) []Entry {
	return append([]Entry(nil), entries...)
}
