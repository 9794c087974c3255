package conflicts

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// Detector scans pack directories for paths that would collide with
// existing state under the target root.
type Detector struct {
	targetRoot string
	logger     zerolog.Logger
}

// NewDetector creates a detector for the given target root (normally the
// user's home directory, or an injected root in tests).
func NewDetector(targetRoot string) *Detector {
	return &Detector{
		targetRoot: filepath.Clean(targetRoot),
		logger:     logging.GetLogger("conflicts.detector"),
	}
}

// Detect walks packDir and returns one record per conflicting target
// path. Traversal is lexical, so results are reproducible. A missing
// pack directory yields an empty result, not an error: a pack simply
// contributing nothing is normal. Filesystem read errors during the walk
// are treated as "no conflict for that entry" rather than aborting the
// scan. Detect never mutates anything.
func (d *Detector) Detect(packDir string) []types.ConflictRecord {
	info, err := os.Stat(packDir)
	if err != nil || !info.IsDir() {
		return nil
	}
	packDir = filepath.Clean(packDir)

	var records []types.ConflictRecord
	seen := make(map[string]bool)

	walkErr := filepath.WalkDir(packDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are not conflicts.
			return nil
		}
		if path == packDir {
			return nil
		}
		rel, relErr := filepath.Rel(packDir, path)
		if relErr != nil {
			return nil
		}
		targetPath := filepath.Join(d.targetRoot, rel)

		if entry.IsDir() {
			return d.checkDir(path, targetPath, seen, &records)
		}
		d.checkFile(packDir, path, targetPath, seen, &records)
		return nil
	})
	if walkErr != nil {
		d.logger.Debug().Err(walkErr).Str("pack", packDir).Msg("walk terminated early")
	}

	d.logger.Debug().Str("pack", packDir).Int("conflicts", len(records)).Msg("scan complete")
	return records
}

// checkDir handles a directory entry of the pack. A symlink at the
// mirrored target path either resolves into the pack (the whole subtree
// is already managed) or conflicts; either way nothing beneath it needs
// visiting. A non-directory at the target path blocks the directory
// outright.
func (d *Detector) checkDir(pkgPath, targetPath string, seen map[string]bool, records *[]types.ConflictRecord) error {
	info, err := os.Lstat(targetPath)
	if err != nil {
		// Nothing at the target path; stow will create the directory.
		return nil
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !paths.LinksMatch(targetPath, pkgPath) && !seen[targetPath] {
			seen[targetPath] = true
			*records = append(*records, types.NewSymlinkConflict(targetPath, paths.Resolve(targetPath)))
		}
		// Managed or conflicting, the subtree is settled either way.
		return fs.SkipDir
	}

	if !info.IsDir() && !seen[targetPath] {
		seen[targetPath] = true
		*records = append(*records, types.NewFileConflict(targetPath))
	}
	return nil
}

// checkFile handles a file entry of the pack. An ancestor symlink decides
// the file's fate before the file itself is considered: one resolving
// into the pack means the subtree is already managed, one resolving
// elsewhere is reported once and supersedes the file.
func (d *Detector) checkFile(packDir, pkgPath, targetPath string, seen map[string]bool, records *[]types.ConflictRecord) {
	if ancestor := paths.FirstSymlinkAncestor(targetPath, d.targetRoot); ancestor != "" {
		rel, err := filepath.Rel(d.targetRoot, ancestor)
		if err != nil {
			return
		}
		expected := filepath.Join(packDir, rel)
		if paths.LinksMatch(ancestor, expected) {
			return
		}
		if !seen[ancestor] {
			seen[ancestor] = true
			*records = append(*records, types.NewSymlinkConflict(ancestor, paths.Resolve(ancestor)))
		}
		return
	}

	info, err := os.Lstat(targetPath)
	if err != nil {
		return
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !paths.LinksMatch(targetPath, pkgPath) && !seen[targetPath] {
			seen[targetPath] = true
			*records = append(*records, types.NewSymlinkConflict(targetPath, paths.Resolve(targetPath)))
		}
		return
	}

	if !seen[targetPath] {
		seen[targetPath] = true
		*records = append(*records, types.NewFileConflict(targetPath))
	}
}
