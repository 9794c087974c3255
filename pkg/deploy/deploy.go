// Package deploy orchestrates the full deployment sequence: conflict
// check, backup, forced resolution, directory preparation, stow
// invocation per pack, and post-deployment verification.
package deploy

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/dotstow/pkg/backup"
	"github.com/arthur-debert/dotstow/pkg/config"
	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/output"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/arthur-debert/dotstow/pkg/verify"
	"github.com/rs/zerolog"
)

// Options configure one deployment invocation.
type Options struct {
	// Force removes detected conflicts (after backing them up) instead of
	// aborting on them.
	Force bool
	// Adopt delegates conflicting files to stow --adopt instead of
	// treating them as blocking.
	Adopt bool
	// Work adds the work overlay packs to the default set.
	Work bool
	// Packs names specific packs; empty means the configured default set.
	Packs []string
}

// Orchestrator sequences a deployment. Packs are processed strictly in
// order; the first stow failure stops the run.
type Orchestrator struct {
	cfg    *config.Config
	paths  *paths.Paths
	out    *output.Printer
	runner Runner
	logger zerolog.Logger
}

// New creates an orchestrator. Pass a nil runner to use GNU Stow.
func New(cfg *config.Config, p *paths.Paths, out *output.Printer, runner Runner) *Orchestrator {
	if runner == nil {
		runner = NewExecRunner(cfg.Stow.Bin, p.DotfilesRoot(), p.TargetRoot(), cfg.Stow.Ignore)
	}
	return &Orchestrator{
		cfg:    cfg,
		paths:  p,
		out:    out,
		runner: runner,
		logger: logging.GetLogger("deploy"),
	}
}

// DeployPackages invokes stow for each named pack. Packs without a
// directory under the base dir are recorded as missing and skipped; a
// stow failure stops processing immediately so no further pack is left
// half-linked behind a known-bad state.
func (o *Orchestrator) DeployPackages(packNames []string, adopt bool) (*types.DeploymentResult, error) {
	result := &types.DeploymentResult{}
	for _, name := range packNames {
		pack := types.Pack{Name: name, Path: o.paths.PackPath(name)}
		if !pack.Exists() {
			result.Missing = append(result.Missing, name)
			o.logger.Debug().Str("pack", name).Msg("pack directory missing, skipping")
			continue
		}

		o.out.Step("Stowing %s", name)
		out, err := o.runner.Stow(name, adopt)
		if err != nil {
			result.Failed = name
			result.FailedOutput = out
			return result, errors.Wrapf(err, errors.ErrStowFailed, "stow failed for pack %q", name).
				WithDetail("output", out)
		}
		result.Stowed = append(result.Stowed, name)
	}
	return result, nil
}

// DeployBase runs the full deployment sequence. Terminal outcomes map to
// the returned error: nil on success, ErrSourceMissing when the dotfiles
// root is unreachable, ErrConflictsFound when conflicts block a
// non-force, non-adopt run, and ErrStowFailed when the linking tool
// fails. Verification issues are reported as warnings only.
func (o *Orchestrator) DeployBase(opts Options) error {
	baseDir := o.paths.DotfilesRoot()
	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrSourceMissing, "dotfiles root %s is not reachable", baseDir)
	}

	packNames := o.cfg.AllPackages(opts.Packs, opts.Work)
	checker := conflicts.NewChecker(baseDir, o.paths.TargetRoot())

	if !opts.Force && !opts.Adopt {
		records, report := checker.CheckAll(packNames)
		if len(records) > 0 {
			o.out.Plain(report)
			return errors.Newf(errors.ErrConflictsFound, "%d conflicts block deployment", len(records))
		}
	}

	if opts.Force {
		records, _ := checker.CheckAll(packNames)
		if len(records) > 0 {
			conflictPaths := make([]string, len(records))
			for i, rec := range records {
				conflictPaths[i] = rec.Path
			}

			mgr := backup.NewManager(baseDir, o.paths.TargetRoot(), o.paths.BackupRoot(), o.cfg.Backup.Prefix)
			if mgr.NeedsBackup(conflictPaths) {
				o.out.Step("Backing up %d conflicting paths", len(conflictPaths))
				res, err := mgr.CreateBackup(conflictPaths, false)
				if err != nil {
					o.out.Warn("Backup incomplete: %v", err)
				} else if res.BackedUp > 0 {
					o.out.OK("Backed up %d paths to %s", res.BackedUp, res.Dir)
				}
			}

			resolver := conflicts.NewResolver(baseDir, o.paths.TargetRoot(), nil)
			removed, err := resolver.HandleConflicts(true, packNames)
			if err != nil {
				o.out.Warn("Removed %d conflicting paths: %v", removed, err)
			} else if removed > 0 {
				o.out.OK("Removed %d conflicting paths", removed)
			}
		}
	}

	o.ensureTargetDirs()

	result, err := o.DeployPackages(packNames, opts.Adopt)
	if err != nil {
		o.out.Error("Deployment failed for pack %q:", result.Failed)
		if result.FailedOutput != "" {
			o.out.Plain(result.FailedOutput)
		}
		return err
	}

	for _, name := range result.Missing {
		o.out.Warn("Pack %q has no directory under %s, skipped", name, baseDir)
	}
	o.out.OK("Stowed %d packs", len(result.Stowed))

	o.verifyDeployment(result.Stowed)
	return nil
}

// ensureTargetDirs pre-creates directories stow must not own: ~/.config
// and an SSH directory with restrictive permissions. Permission errors
// are best-effort on some platforms and only logged.
func (o *Orchestrator) ensureTargetDirs() {
	configDir := filepath.Join(o.paths.TargetRoot(), ".config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		o.logger.Debug().Err(err).Str("dir", configDir).Msg("could not create .config")
	}

	sshDir := filepath.Join(o.paths.TargetRoot(), ".ssh")
	if err := os.MkdirAll(sshDir, 0o700); err != nil {
		o.logger.Debug().Err(err).Str("dir", sshDir).Msg("could not create .ssh")
	}
	if err := os.Chmod(sshDir, 0o700); err != nil {
		o.logger.Debug().Err(err).Str("dir", sshDir).Msg("could not restrict .ssh permissions")
	}
}

// verifyDeployment re-confirms each expected symlink after stow ran.
// Discrepancies are warnings, never fatal.
func (o *Orchestrator) verifyDeployment(stowed []string) {
	var expected []string
	for _, name := range stowed {
		expected = append(expected, o.ExpectedLinks(name)...)
	}
	if len(expected) == 0 {
		return
	}

	report := verify.New(o.paths.DotfilesRoot()).Verify(expected)
	if report.OK() {
		o.out.OK("Verified: %s", report.Summary())
		return
	}
	o.out.Warn("Verification: %s", report.Summary())
	for _, issue := range report.Issues {
		o.out.Warn("  %s: %s", issue.Path, issue.Reason)
	}
}

// ExpectedLinks enumerates the target paths a pack's files should occupy
// after deployment, skipping entries matched by the stow ignore patterns.
func (o *Orchestrator) ExpectedLinks(packName string) []string {
	packDir := o.paths.PackPath(packName)
	ignores := compileIgnores(o.cfg.Stow.Ignore)

	var links []string
	_ = filepath.WalkDir(packDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil || path == packDir {
			return nil
		}
		for _, re := range ignores {
			if re.MatchString(entry.Name()) {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if entry.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(packDir, path)
		if relErr != nil {
			return nil
		}
		links = append(links, filepath.Join(o.paths.TargetRoot(), rel))
		return nil
	})
	return links
}

// compileIgnores compiles the stow ignore patterns, which are regular
// expressions matched against entry names. Invalid patterns are skipped.
func compileIgnores(patterns []string) []*regexp.Regexp {
	var res []*regexp.Regexp
	for _, p := range patterns {
		if re, err := regexp.Compile("^" + p + "$"); err == nil {
			res = append(res, re)
		}
	}
	return res
}
