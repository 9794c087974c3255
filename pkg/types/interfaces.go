package types

import "io/fs"

// FS abstracts the filesystem operations the mutating components need, so
// tests can inject failures that are hard to provoke on a real disk.
// Read-only scanning (the conflict detector) resolves symlink chains and
// works on the real filesystem directly.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Readlink(name string) (string, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Remove(name string) error
	RemoveAll(path string) error
}
