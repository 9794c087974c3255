// Package paths centralizes path handling for dotstow: dotfiles root
// resolution, backup locations under the XDG data directory, pack path
// helpers, and the symlink resolution primitives shared by conflict
// detection, backup, and verification.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotstow/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for the
	// dotfiles source location.
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvBackupDir overrides the backup root directory.
	EnvBackupDir = "DOTSTOW_BACKUP_DIR"

	// EnvHome is the standard home directory variable.
	EnvHome = "HOME"
)

const (
	// DefaultDotfilesDir is the default directory name for dotfiles,
	// relative to the home directory.
	DefaultDotfilesDir = "dotfiles"

	// BackupsDir is the subdirectory of the data dir holding timestamped
	// backup directories.
	BackupsDir = "backups"
)

// Paths provides resolved locations for one invocation.
type Paths struct {
	dotfilesRoot string
	targetRoot   string
	backupRoot   string
}

// Option customizes a Paths instance, mainly for injecting test roots.
type Option func(*Paths)

// WithTargetRoot overrides the target root (normally $HOME).
func WithTargetRoot(root string) Option {
	return func(p *Paths) { p.targetRoot = root }
}

// WithBackupRoot overrides the backup root.
func WithBackupRoot(root string) Option {
	return func(p *Paths) { p.backupRoot = root }
}

// New resolves all paths for one invocation. The dotfiles root comes from
// the argument, then $DOTFILES_ROOT, then ~/dotfiles. The root is not
// required to exist; reachability is the orchestrator's concern.
func New(dotfilesRoot string, opts ...Option) (*Paths, error) {
	p := &Paths{dotfilesRoot: dotfilesRoot}

	if p.dotfilesRoot == "" {
		p.dotfilesRoot = os.Getenv(EnvDotfilesRoot)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine home directory")
	}
	p.targetRoot = home

	if p.dotfilesRoot == "" {
		p.dotfilesRoot = filepath.Join(home, DefaultDotfilesDir)
	}

	abs, err := filepath.Abs(p.dotfilesRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid dotfiles root %q", p.dotfilesRoot)
	}
	p.dotfilesRoot = abs

	if dir := os.Getenv(EnvBackupDir); dir != "" {
		p.backupRoot = dir
	} else {
		p.backupRoot = filepath.Join(xdg.DataHome, "dotstow", BackupsDir)
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// DotfilesRoot returns the resolved dotfiles source root.
func (p *Paths) DotfilesRoot() string { return p.dotfilesRoot }

// TargetRoot returns the root under which symlinks are created.
func (p *Paths) TargetRoot() string { return p.targetRoot }

// BackupRoot returns the directory under which timestamped backup
// directories are created.
func (p *Paths) BackupRoot() string { return p.backupRoot }

// PackPath returns the source directory of the named pack.
func (p *Paths) PackPath(packName string) string {
	return filepath.Join(p.dotfilesRoot, packName)
}

// ValidatePackName rejects names that would escape the dotfiles root or
// address hidden infrastructure directories.
func ValidatePackName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "pack name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return errors.Newf(errors.ErrInvalidInput, "invalid pack name %q", name)
	}
	if strings.HasPrefix(name, ".") {
		return errors.Newf(errors.ErrInvalidInput, "pack name %q cannot start with a dot", name)
	}
	return nil
}
