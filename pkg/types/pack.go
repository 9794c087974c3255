package types

import (
	"os"
	"path/filepath"
)

// Pack represents one named package: a directory tree under the dotfiles
// root whose relative layout mirrors where symlinks should appear under
// the target root.
type Pack struct {
	// Name is the pack name, usually the directory name.
	Name string

	// Path is the absolute path to the pack directory.
	Path string
}

// FilePath returns the full path to a file within the pack.
func (p *Pack) FilePath(rel string) string {
	return filepath.Join(p.Path, rel)
}

// TargetPath returns where rel should appear under targetRoot.
func (p *Pack) TargetPath(targetRoot, rel string) string {
	return filepath.Join(targetRoot, rel)
}

// Exists reports whether the pack directory is present on disk. A missing
// pack is normal, it simply contributes nothing to a deployment.
func (p *Pack) Exists() bool {
	info, err := os.Stat(p.Path)
	return err == nil && info.IsDir()
}
