// Package testutil provides filesystem fixture helpers for tests. All
// helpers fail the test on error so call sites stay flat.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a temporary directory cleaned up with the test. The
// path is fully resolved so symlink comparisons work on platforms where
// the temp root is itself a symlink (macOS /var -> /private/var).
func TempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	return dir
}

// CreateDir creates a directory (and parents) under root.
func CreateDir(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
	return path
}

// CreateFile creates a file with content under root, creating parents.
func CreateFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create file %s: %v", path, err)
	}
	return path
}

// CreateSymlink creates a symlink at root/rel pointing at target,
// creating parents. The target does not need to exist.
func CreateSymlink(t *testing.T, root, rel, target string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.Symlink(target, path); err != nil {
		t.Fatalf("failed to create symlink %s -> %s: %v", path, target, err)
	}
	return path
}

// Exists reports whether path exists, including as a broken symlink.
func Exists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Lstat(path)
	return err == nil
}

// IsSymlink reports whether path is a symlink.
func IsSymlink(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
