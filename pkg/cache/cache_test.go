package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "TLR-01-01-A-01")
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
	if err := c.Set(ctx, "TLR-01-01-A-01", []byte("<svg/>"), TTLBarcode); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "TLR-01-01-A-01")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "TLR-01-01-A-01"); err != nil {
		t.Errorf("Delete error: %v", err)
	}

	// Keys that are not label text are refused
	if _, _, err := c.Get(ctx, "../etc/passwd"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Get invalid key error = %v, want ErrInvalidKey", err)
	}
	if err := c.Set(ctx, "", nil, 0); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Set empty key error = %v, want ErrInvalidKey", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "barcodes")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	const key = "402-F-00-01-A"
	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, key, []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	// Entries are plain files named after the key.
	raw, err := os.ReadFile(filepath.Join(dir, key+".svg"))
	if err != nil || string(raw) != "<svg/>" {
		t.Errorf("file contents = %q, %v", raw, err)
	}
	path, _ := c.Path(key)
	if path != filepath.Join(dir, key+".svg") {
		t.Errorf("Path = %s", path)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"", "../escape", "a/b", `a\b`, "..", "TLR\n01"} {
		if err := c.Set(ctx, key, []byte("x"), 0); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Set(%q) error = %v, want ErrInvalidKey", key, err)
		}
		if _, _, err := c.Get(ctx, key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Get(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"TLR-01-01-A-01", "TLR-01-01-A-02", "TLR-01-01-B-01"} {
		if err := c.Set(ctx, key, []byte("<svg/>"), 0); err != nil {
			t.Fatal(err)
		}
	}
	// Unrelated files survive.
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html/>"), 0644); err != nil {
		t.Fatal(err)
	}

	count, size, err := c.Entries()
	if err != nil || count != 3 || size != 18 {
		t.Errorf("Entries = %d, %d, %v; want 3, 18", count, size, err)
	}

	removed, err := c.Clear()
	if err != nil || removed != 3 {
		t.Errorf("Clear = %d, %v; want 3", removed, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("Clear removed an unrelated file: %v", err)
	}
	if count, _, _ := c.Entries(); count != 0 {
		t.Errorf("Entries after Clear = %d", count)
	}
}

func TestRedisCacheKeys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	c := NewRedisCacheFromClient(client, "")
	defer c.Close()

	if got := c.Key("TLR-01-01-A-01"); got != "labeller:barcode:TLR-01-01-A-01" {
		t.Errorf("Key = %s", got)
	}

	// Invalid keys are rejected before any round trip.
	ctx := context.Background()
	if _, _, err := c.Get(ctx, "../x"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Get error = %v, want ErrInvalidKey", err)
	}
	if err := c.Set(ctx, "", nil, 0); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Set error = %v, want ErrInvalidKey", err)
	}

	scoped := NewRedisCacheFromClient(client, "test:")
	if got := scoped.Key("A"); got != "test:A" {
		t.Errorf("Key with prefix = %s", got)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://not-redis", ""); err == nil {
		t.Error("NewRedisCache should reject non-redis URLs")
	}
}

func TestETag(t *testing.T) {
	img := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	tag := ETag(img)
	if tag != ETag(img) {
		t.Error("ETag should be deterministic")
	}
	if tag == ETag([]byte("<svg/>")) {
		t.Error("different images should get different tags")
	}
	if len(tag) != etagLen+2 || tag[0] != '"' || tag[len(tag)-1] != '"' {
		t.Errorf("ETag = %s, want a quoted %d digit tag", tag, etagLen)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrUnavailable)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrInvalidKey) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = time.Second })

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
		return ErrInvalidKey
	})
	if err != ErrInvalidKey {
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
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}

	// Gives up after three attempts
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, ErrUnavailable) || calls != 3 {
		t.Errorf("err = %v after %d calls, want ErrUnavailable after 3", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
