package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"kangaroo/internal/lexer"
	"kangaroo/internal/parser"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "sample.kg", sample)
	opts := Options{Terminator: lexer.TerminatorAuto, Cache: cache}

	first, err := ParseLines(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first parse must miss the cache")
	}

	second, err := ParseLines(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second parse must hit the cache")
	}
	if diff := cmp.Diff(renderings(first.Units), renderings(second.Units)); diff != "" {
		t.Fatalf("cached renderings differ (-fresh +cached):\n%s", diff)
	}
	if diff := cmp.Diff(first.Diagnostics().Items(), second.Diagnostics().Items()); diff != "" {
		t.Fatalf("cached diagnostics differ (-fresh +cached):\n%s", diff)
	}
	if !errors.Is(second.Units[2].Err, parser.ErrMissingHash) {
		t.Fatalf("cached error = %v", second.Units[2].Err)
	}
	if _, ok := second.Units[0].Tree(); ok {
		t.Fatal("cached units carry no tree")
	}
}

func TestDiskCacheKeyDependsOnOptions(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var content [32]byte
	full := cache.Key(content, Options{})
	compat := cache.Key(content, Options{Mode: parser.ModeCompat})
	if full == compat {
		t.Fatal("mode must change the cache key")
	}
	if full != cache.Key(content, Options{Cache: cache}) {
		t.Fatal("the cache itself must not change the key")
	}

	path := writeFile(t, t.TempDir(), "a.kg", "# a = 1;\n")
	if _, err := ParseLines(context.Background(), path, Options{Cache: cache}); err != nil {
		t.Fatal(err)
	}
	res, err := ParseLines(context.Background(), path, Options{Mode: parser.ModeCompat, Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Fatal("changed mode must miss the cache")
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var key CacheKey
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	found, err := cache.Get(key, &out)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("payload with another schema must be a miss")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir() + "/cache")
	if err != nil {
		t.Fatal(err)
	}
	var key CacheKey
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	found, err := cache.Get(key, &out)
	if err != nil || found {
		t.Fatalf("expected miss after DropAll, got %v, %v", found, err)
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	var out DiskPayload
	if err := cache.Put(CacheKey{}, &DiskPayload{}); err != nil {
		t.Fatal(err)
	}
	if found, err := cache.Get(CacheKey{}, &out); found || err != nil {
		t.Fatalf("nil cache Get = %v, %v", found, err)
	}
}
