package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve fully resolves any chain of symlinks at path. When resolution
// fails (broken link, missing path) it falls back to the raw readlink
// target for a symlink, and to the path itself otherwise. This mirrors
// the forgiving behavior conflict detection needs: a broken link still
// has an identity to report.
func Resolve(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	if target, err := os.Readlink(path); err == nil {
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		return filepath.Clean(target)
	}
	return path
}

// LinksMatch reports whether two paths resolve to the same location.
// Both sides are fully resolved so a target-side symlink chain and its
// package-side file compare equal when they end up at the same place.
func LinksMatch(a, b string) bool {
	return Resolve(a) == Resolve(b)
}

// IsSymlink reports whether path is itself a symlink (without following).
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// Exists reports whether path exists at all, including as a broken
// symlink (which Stat would miss).
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsStowManaged reports whether path is already managed: some symlink at
// path or one of its ancestors resolves into sourceRoot. Used to decide
// whether a path needs backing up and whether an expected link verifies.
func IsStowManaged(path, sourceRoot string) bool {
	source := filepath.Clean(sourceRoot)
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if IsSymlink(p) {
			resolved := Resolve(p)
			if resolved == source || strings.HasPrefix(resolved, source+string(filepath.Separator)) {
				return true
			}
		}
		if p == filepath.Dir(p) {
			return false
		}
	}
}

// FirstSymlinkAncestor walks from path's immediate parent up to root
// (exclusive) and returns the first ancestor that is itself a symlink.
// Returns the empty string when no ancestor is a symlink.
func FirstSymlinkAncestor(path, root string) string {
	stop := filepath.Clean(root)
	for p := filepath.Dir(filepath.Clean(path)); p != stop && p != filepath.Dir(p); p = filepath.Dir(p) {
		if IsSymlink(p) {
			return p
		}
	}
	return ""
}
