package leaderboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/storage"
)

var errDown = errors.New("backend down")

type fakeBackend struct {
	down bool
	rows []storage.ScoreEntry
}

func (f *fakeBackend) SaveScore(_ context.Context, name string, score int) (int64, error) {
	if f.down {
		return 0, errDown
	}
	f.rows = append(f.rows, storage.ScoreEntry{ID: int64(len(f.rows) + 1), Name: name, Score: score})
	sort.SliceStable(f.rows, func(i, j int) bool { return f.rows[i].Score > f.rows[j].Score })
	return int64(len(f.rows)), nil
}

func (f *fakeBackend) TopScores(_ context.Context, limit int) ([]storage.ScoreEntry, error) {
	if f.down {
		return nil, errDown
	}
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func testConfig(t *testing.T) config.LeaderboardConfig {
	return config.LeaderboardConfig{
		TopN:       3,
		CachePath:  filepath.Join(t.TempDir(), "leaderboard.yaml"),
		MaxNameLen: 12,
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  bob ", "bob"},
		{"", AnonymousName},
		{"   ", AnonymousName},
		{"ABCDEFGHIJKLMNOP", "ABCDEFGHIJKL"},
		{"abcdefghijk  x", "abcdefghijk"},
		{"ÄÖÜäöüßÄÖÜäöüß", "ÄÖÜäöüßÄÖÜäö"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in, 12); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoardNameLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxNameLen = 5
	b := New(nil, cfg)
	if b.MaxNameLen() != 5 {
		t.Errorf("MaxNameLen() = %d, want 5", b.MaxNameLen())
	}
	if got := b.Normalize(" lifter99 "); got != "lifte" {
		t.Errorf("Normalize = %q, want %q", got, "lifte")
	}

	cfg.MaxNameLen = 0
	if got := New(nil, cfg).MaxNameLen(); got != 12 {
		t.Errorf("default MaxNameLen() = %d, want 12", got)
	}
}

func TestSubmitWithSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := testConfig(t)
	b := New(store, cfg)
	b.Submit(ctx, "low", 100)
	b.Submit(ctx, "high", 900)
	b.Submit(ctx, "mid", 500)
	top, err := b.Submit(ctx, "tiny", 1)
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}

	if want := []string{"high", "mid", "low"}; !equal(names(top), want) {
		t.Errorf("top = %v, want %v", names(top), want)
	}
	if _, err := os.Stat(cfg.CachePath); err != nil {
		t.Errorf("cache file not written: %v", err)
	}
}

func TestSubmitFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{down: true}
	cfg := testConfig(t)
	b := New(backend, cfg)

	top, err := b.Submit(ctx, "", 300)
	if err != nil {
		t.Fatalf("Submit() surfaced a backend failure: %v", err)
	}
	if len(top) != 1 || top[0].Name != AnonymousName || top[0].Score != 300 {
		t.Fatalf("top = %+v", top)
	}

	top, _ = b.Top(ctx, 0)
	if len(top) != 1 {
		t.Errorf("Top() while down = %+v, want the cached entry", top)
	}

	// A fresh board over the same file sees the cached entry.
	again := New(nil, cfg)
	top, _ = again.Top(ctx, 0)
	if len(top) != 1 || top[0].Score != 300 {
		t.Errorf("cache not persisted: %+v", top)
	}
}

func TestPendingScoresReplayOnRecovery(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{down: true}
	b := New(backend, testConfig(t))

	b.Submit(ctx, "offline", 700)
	if len(backend.rows) != 0 {
		t.Fatal("backend should not have received anything while down")
	}

	backend.down = false
	top, err := b.Top(ctx, 0)
	if err != nil {
		t.Fatalf("Top() error: %v", err)
	}
	if len(backend.rows) != 1 || backend.rows[0].Name != "offline" {
		t.Errorf("pending score not replayed: %+v", backend.rows)
	}
	if len(top) != 1 || top[0].Name != "offline" {
		t.Errorf("top = %+v", top)
	}

	b.Top(ctx, 0)
	if len(backend.rows) != 1 {
		t.Errorf("pending score replayed twice: %d rows", len(backend.rows))
	}
}

func TestCacheKeepsTopNWithStableTies(t *testing.T) {
	ctx := context.Background()
	b := New(nil, testConfig(t))

	b.Submit(ctx, "a", 100)
	b.Submit(ctx, "b", 200)
	b.Submit(ctx, "c", 100)
	top, _ := b.Submit(ctx, "d", 50)

	if want := []string{"b", "a", "c"}; !equal(names(top), want) {
		t.Errorf("top = %v, want %v", names(top), want)
	}

	top, _ = b.Top(ctx, 2)
	if want := []string{"b", "a"}; !equal(names(top), want) {
		t.Errorf("Top(2) = %v, want %v", names(top), want)
	}
}

func TestCorruptCacheStartsEmpty(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.CachePath, []byte("entries: [not: valid: yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := New(nil, cfg)
	top, err := b.Top(context.Background(), 0)
	if err != nil || len(top) != 0 {
		t.Errorf("Top() = %+v, %v; want empty, nil", top, err)
	}
}

func TestMemoryOnlyCache(t *testing.T) {
	ctx := context.Background()
	b := New(nil, config.LeaderboardConfig{})

	top, _ := b.Submit(ctx, "solo", 10)
	if len(top) != 1 {
		t.Fatalf("top = %+v", top)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New(&fakeBackend{}, testConfig(t))
	if _, err := b.Submit(ctx, "x", 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Submit() error = %v, want context.Canceled", err)
	}
	if _, err := b.Top(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Top() error = %v, want context.Canceled", err)
	}
}

func TestEntryTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := New(nil, testConfig(t), WithClock(func() time.Time { return at }))

	top, _ := b.Submit(context.Background(), "t", 5)
	if !top[0].At.Equal(at) {
		t.Errorf("At = %v, want %v", top[0].At, at)
	}
}
