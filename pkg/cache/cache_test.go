package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set = %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v, want hit", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("entry still present after Delete")
	}
	// Deleting again must not error.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete = %v, want nil", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("expired entry: ok=%v err=%v, want miss", ok, err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}

	hash := Hash([]byte("k"))
	path := filepath.Join(dir, hash[:2], hash[2:]+".cache")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("corrupt entry: ok=%v err=%v, want miss", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed on read")
	}
}

func TestFileCacheKeyMismatch(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "a", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}

	// Move a's entry file to where b's would live. The recorded key no
	// longer matches, so the read must miss rather than return a's data.
	hashA, hashB := Hash([]byte("a")), Hash([]byte("b"))
	src := filepath.Join(dir, hashA[:2], hashA[2:]+".cache")
	dst := filepath.Join(dir, hashB[:2], hashB[2:]+".cache")
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(src, dst); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := c.Get(ctx, "b"); err != nil || ok {
		t.Errorf("mismatched entry: ok=%v err=%v, want miss", ok, err)
	}
}

func TestFileCacheShardLayout(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(context.Background(), "k", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}

	hash := Hash([]byte("k"))
	path := filepath.Join(dir, hash[:2], hash[2:]+".cache")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("entry not at sharded path: %v", err)
	}
	if leftovers, _ := filepath.Glob(filepath.Join(dir, hash[:2], "write-*")); len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("x"), 0); err != nil {
		t.Fatalf("Set = %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("NullCache stored a value: ok=%v err=%v", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close = %v", err)
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("one"))
	b := Hash([]byte("two"))
	if len(a) != 64 {
		t.Errorf("Hash length = %d, want 64", len(a))
	}
	if a == b {
		t.Error("distinct inputs produced equal hashes")
	}
	if a != Hash([]byte("one")) {
		t.Error("Hash is not deterministic")
	}
}

func TestArtifactKey(t *testing.T) {
	k := ArtifactKey("abc123", "svg")
	if k != "artifact:abc123:svg" {
		t.Errorf("ArtifactKey = %q", k)
	}
	if ArtifactKey("abc123", "png") == k {
		t.Error("format not part of the key")
	}
}
