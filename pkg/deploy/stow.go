package deploy

import (
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner invokes the external linking tool for one pack. It exists as an
// interface so the orchestrator can be tested without GNU Stow installed.
type Runner interface {
	// Stow links the named pack into the target root. It returns the
	// tool's filtered combined output, and a non-nil error on non-zero
	// exit.
	Stow(pack string, adopt bool) (string, error)
}

// ExecRunner runs GNU Stow as a subprocess.
type ExecRunner struct {
	// Bin is the stow binary name or path.
	Bin string
	// BaseDir is the dotfiles source root (stow -d).
	BaseDir string
	// TargetRoot is where symlinks are created (stow -t).
	TargetRoot string
	// Ignore holds stow --ignore patterns for non-config files.
	Ignore []string

	logger zerolog.Logger
}

// NewExecRunner creates a runner for the given stow binary and roots.
func NewExecRunner(bin, baseDir, targetRoot string, ignore []string) *ExecRunner {
	return &ExecRunner{
		Bin:        bin,
		BaseDir:    baseDir,
		TargetRoot: targetRoot,
		Ignore:     ignore,
		logger:     logging.GetLogger("deploy.stow"),
	}
}

// Stow invokes stow with --no-folding so each file gets its own symlink,
// plus the configured ignore patterns. In adopt mode --adopt absorbs
// existing target files into the pack instead of failing on them.
func (r *ExecRunner) Stow(pack string, adopt bool) (string, error) {
	args := []string{"--no-folding", "-d", r.BaseDir, "-t", r.TargetRoot}
	for _, pattern := range r.Ignore {
		args = append(args, "--ignore="+pattern)
	}
	if adopt {
		args = append(args, "--adopt")
	}
	args = append(args, pack)

	r.logger.Debug().Str("bin", r.Bin).Strs("args", args).Msg("invoking stow")
	out, err := exec.Command(r.Bin, args...).CombinedOutput()
	return FilterOutput(string(out)), err
}

// FilterOutput drops stow's purely informational lines (per-link
// narration) so surfaced output contains only diagnostics worth reading.
func FilterOutput(out string) string {
	var kept []string
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isInformational(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isInformational(line string) bool {
	for _, prefix := range []string{"LINK:", "UNLINK:", "MKDIR:", "RMDIR:", "MV:"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
