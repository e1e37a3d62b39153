package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "html"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "html", AutoPrint: true})
	ak3 := k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "html"})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different inputs or options should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey unexpected: %s", ak1)
	}
	if ak1 != k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "html"}) {
		t.Error("ArtifactKey should be deterministic")
	}
	if ak1 == k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "html", Version: "v1.1.0"}) {
		t.Error("ArtifactKey should change with the renderer version")
	}

	if got := k.ShareKey("abc"); got != "share:abc" {
		t.Errorf("ShareKey unexpected: %s", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "site:1:")

	if got := scoped.ShareKey("abc"); got != "site:1:share:abc" {
		t.Errorf("ScopedKeyer ShareKey unexpected: %s", got)
	}
	if got := scoped.ArtifactKey("h", ArtifactKeyOpts{}); !strings.HasPrefix(got, "site:1:artifact:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.ShareKey("key"); key != "prefix:share:key" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestHashJSON(t *testing.T) {
	type in struct{ A, B int }
	h1, err := HashJSON(in{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := HashJSON(in{1, 3})
	if h1 == h2 || len(h1) != 64 {
		t.Errorf("HashJSON unexpected: %s %s", h1, h2)
	}
	if _, err := HashJSON(make(chan int)); err == nil {
		t.Error("HashJSON should fail for unsupported values")
	}
}

func testCacheRoundTrip(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Fatalf("Get missing = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v1" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v2"), 0); err != nil {
		t.Fatal(err)
	}
	if data, _, _ := c.Get(ctx, "k"); string(data) != "v2" {
		t.Errorf("overwrite = %q", data)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete missing error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	testCacheRoundTrip(t, c)
}

func TestFileCacheExpiryAndClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry returned")
	}

	if err := c.Set(ctx, "a", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	corrupt := c.path("corrupt")
	if err := os.MkdirAll(filepath.Dir(corrupt), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(corrupt, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "corrupt"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v", hit, err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
	if entries, _ := os.ReadDir(c.Dir()); len(entries) != 0 {
		t.Errorf("cache dir not empty: %d entries", len(entries))
	}
}

func TestMemoryCache(t *testing.T) {
	testCacheRoundTrip(t, NewMemoryCache(0))
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry missing")
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, Len = %d", c.Len())
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	_ = c.Set(ctx, "short", []byte("1"), time.Minute)
	_ = c.Set(ctx, "long", []byte("2"), time.Hour)
	_ = c.Set(ctx, "new", []byte("3"), time.Hour)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("entry closest to expiry should be evicted")
	}
	if _, hit, _ := c.Get(ctx, "new"); !hit {
		t.Error("new entry missing")
	}
}

func TestMemoryCacheCopiesData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'x'
	if data, _, _ := c.Get(ctx, "k"); string(data) != "abc" {
		t.Errorf("stored data aliased caller buffer: %q", data)
	}
}

var errPermanent = errors.New("permanent")

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
