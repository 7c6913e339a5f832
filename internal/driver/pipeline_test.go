package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"reactc/internal/reactive"
)

const fixture = `fn $1:f() {
  scope @0 range=[1,2) deps=[] decls=[$2] reassign=[] {
    [1] $2:a = Object()
  }
  scope @1 range=[2,3) deps=[] decls=[$3] reassign=[] {
    [2] $3:b = Object()
  }
  return $3
}
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPruneFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "good.rhir", fixture)
	bad := writeFixture(t, dir, "bad.rhir", "fn f() {\n  [1] $2 = Bogus()\n}\n")
	missing := filepath.Join(dir, "missing.rhir")

	results, fileSet, err := PruneFiles(context.Background(), []string{good, bad, missing}, Options{})
	require.NoError(t, err)
	require.NotNil(t, fileSet)
	require.Len(t, results, 3)

	require.True(t, results[0].Ok())
	require.Equal(t, 1, results[0].Stats.ScopesKept)
	require.Equal(t, 1, results[0].Stats.ScopesPruned)
	require.Contains(t, results[0].Output, "scope @1")
	require.NotContains(t, results[0].Output, "scope @0")

	require.False(t, results[1].Ok())
	require.False(t, results[2].Ok())
}

func TestPruneFilesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "f.rhir", fixture)
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	opts := Options{Cache: cache}
	first, _, err := PruneFiles(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	require.False(t, first[0].FromCache)

	second, _, err := PruneFiles(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	require.True(t, second[0].FromCache)
	require.Equal(t, first[0].Output, second[0].Output)
	require.Equal(t, first[0].Stats, second[0].Stats)

	// Different options must miss.
	opts.Prune = reactive.Options{MemoizeJsxElements: true}
	third, _, err := PruneFiles(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	require.False(t, third[0].FromCache)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)

	key := Key([]byte("content"), reactive.Options{})
	payload := DiskPayload{Output: "fn f() {\n}\n", Functions: 1}
	require.NoError(t, cache.Put(key, &payload))

	var got DiskPayload
	ok, err := cache.Get(key, &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, payload.Output, got.Output)

	var miss DiskPayload
	ok, err = cache.Get(Key([]byte("other"), reactive.Options{}), &miss)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKeyDependsOnOptions(t *testing.T) {
	content := []byte(fixture)
	a := Key(content, reactive.Options{})
	b := Key(content, reactive.Options{MemoizeJsxElements: true})
	if a == b {
		t.Errorf("cache key must include options")
	}
	if !strings.Contains(fixture, "scope @0") {
		t.Fatalf("fixture sanity check failed")
	}
}
