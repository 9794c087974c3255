package conflicts

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/filesystem"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// Resolver deletes the filesystem state described by detected conflicts.
// It never mutates the records themselves; it only removes the paths they
// name, tracking what was already removed so children of a deleted
// directory are not deleted twice.
type Resolver struct {
	checker *Checker
	fs      types.FS
	logger  zerolog.Logger
}

// NewResolver creates a resolver sharing the checker's view of the world.
// Pass a nil fs to use the real filesystem.
func NewResolver(baseDir, targetRoot string, fsys types.FS) *Resolver {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Resolver{
		checker: NewChecker(baseDir, targetRoot),
		fs:      fsys,
		logger:  logging.GetLogger("conflicts.resolver"),
	}
}

// HandleConflicts removes every conflicting path found for the named
// packs. The forced gate is a deliberate safety valve: unless forced is
// true this is a no-op, so resolution can never run accidentally.
// Failures to delete one path do not prevent attempting the rest; the
// returned error reports the failure count when any removal failed.
func (r *Resolver) HandleConflicts(forced bool, packNames []string) (int, error) {
	if !forced {
		return 0, nil
	}

	records, _ := r.checker.CheckAll(packNames)

	var removed []string
	var failures int
	for _, rec := range records {
		path := rec.Path
		if path == "" {
			// Should never happen; never pass an empty path to RemoveAll.
			r.logger.Error().Str("record", rec.Encode()).Msg("conflict record with empty path, skipping")
			continue
		}
		if coveredBy(path, removed) {
			r.logger.Debug().Str("path", path).Msg("already removed with its parent, skipping")
			continue
		}
		if err := r.fs.RemoveAll(path); err != nil {
			failures++
			r.logger.Warn().Err(err).Str("path", path).Msg("failed to remove conflicting path")
			continue
		}
		removed = append(removed, path)
		r.logger.Info().Str("path", path).Msg("removed conflicting path")
	}

	if failures > 0 {
		return len(removed), errors.Newf(errors.ErrResolvePartial,
			"failed to remove %d of %d conflicting paths", failures, len(records)).
			WithDetail("failed", failures)
	}
	return len(removed), nil
}

// coveredBy reports whether path equals, or lives under, any previously
// removed path.
func coveredBy(path string, removed []string) bool {
	for _, r := range removed {
		if path == r || strings.HasPrefix(path, r+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
