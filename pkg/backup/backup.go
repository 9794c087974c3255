// Package backup copies target paths into a timestamped backup directory
// before any destructive change. Symlinks are copied as symlinks, never
// dereferenced, so broken links do not abort a backup.
package backup

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/filesystem"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// timestampFormat names backup directories <prefix><YYYYMMDD-HHMMSS>.
const timestampFormat = "20060102-150405"

// Manager creates backups of target paths that are not yet stow-managed.
type Manager struct {
	sourceRoot string
	targetRoot string
	backupRoot string
	prefix     string
	fs         types.FS
	now        func() time.Time
	logger     zerolog.Logger
}

// Option customizes a Manager.
type Option func(*Manager)

// WithFS injects a filesystem, for tests that need copies to fail.
func WithFS(fsys types.FS) Option {
	return func(m *Manager) { m.fs = fsys }
}

// WithClock injects the clock used for the backup directory timestamp.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a backup manager. sourceRoot is the dotfiles root
// used for the stow-managed check, targetRoot anchors the relative layout
// inside the backup directory, and backups land under backupRoot named
// prefix plus timestamp.
func NewManager(sourceRoot, targetRoot, backupRoot, prefix string, opts ...Option) *Manager {
	m := &Manager{
		sourceRoot: sourceRoot,
		targetRoot: targetRoot,
		backupRoot: backupRoot,
		prefix:     prefix,
		fs:         filesystem.NewOS(),
		now:        time.Now,
		logger:     logging.GetLogger("backup"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NeedsBackup reports whether any path in the set exists (including as a
// broken symlink) and is not already stow-managed.
func (m *Manager) NeedsBackup(pathSet []string) bool {
	for _, p := range pathSet {
		if m.needsBackup(p) {
			return true
		}
	}
	return false
}

func (m *Manager) needsBackup(path string) bool {
	return paths.Exists(path) && !paths.IsStowManaged(path, m.sourceRoot)
}

// CreateBackup copies every path needing backup into a fresh timestamped
// backup directory. A failing copy does not stop the remaining paths from
// being attempted; when any copy failed the returned error carries the
// failure count, distinct from the success count in the result.
func (m *Manager) CreateBackup(pathSet []string, skip bool) (*types.BackupResult, error) {
	result := &types.BackupResult{}
	if skip {
		m.logger.Debug().Msg("backup skipped by request")
		return result, nil
	}

	var toBackup []string
	for _, p := range pathSet {
		if m.needsBackup(p) {
			toBackup = append(toBackup, p)
		}
	}
	if len(toBackup) == 0 {
		return result, nil
	}

	dir := filepath.Join(m.backupRoot, m.prefix+m.now().Format(timestampFormat))
	if err := m.fs.MkdirAll(dir, 0o755); err != nil {
		return result, errors.Wrapf(err, errors.ErrBackupCreate, "failed to create backup directory %s", dir)
	}
	result.Dir = dir

	for _, src := range toBackup {
		dst := filepath.Join(dir, m.relName(src))
		if err := m.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			result.Failed++
			m.logger.Warn().Err(err).Str("path", src).Msg("failed to prepare backup location")
			continue
		}
		if err := m.copyPath(src, dst); err != nil {
			result.Failed++
			m.logger.Warn().Err(err).Str("path", src).Msg("failed to back up path")
			continue
		}
		result.BackedUp++
		m.logger.Info().Str("path", src).Str("backup", dst).Msg("backed up")
	}

	if result.Failed > 0 {
		return result, errors.Newf(errors.ErrBackupPartial,
			"backed up %d paths, %d failed", result.BackedUp, result.Failed).
			WithDetail("dir", dir).
			WithDetail("failed", result.Failed)
	}
	return result, nil
}

// relName maps a target path to its location inside the backup directory,
// preserving the layout relative to the target root. Paths outside the
// target root fall back to their base name.
func (m *Manager) relName(path string) string {
	rel, err := filepath.Rel(m.targetRoot, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return rel
}

// copyPath copies src to dst preserving symlink-ness: symlinks are
// recreated with their raw targets, directories are copied recursively,
// regular files byte for byte with their permission bits.
func (m *Manager) copyPath(src, dst string) error {
	info, err := m.fs.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := m.fs.Readlink(src)
		if err != nil {
			return err
		}
		return m.fs.Symlink(target, dst)

	case info.IsDir():
		return m.copyDir(src, dst, info.Mode().Perm())

	default:
		return m.copyFile(src, dst, info.Mode().Perm())
	}
}

func (m *Manager) copyDir(src, dst string, perm fs.FileMode) error {
	if err := m.fs.MkdirAll(dst, perm); err != nil {
		return err
	}
	entries, err := m.fs.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := m.copyPath(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) copyFile(src, dst string, perm fs.FileMode) error {
	data, err := m.fs.ReadFile(src)
	if err != nil {
		return err
	}
	return m.fs.WriteFile(dst, data, perm)
}
