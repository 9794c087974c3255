package deploy

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotstow/pkg/config"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/output"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/testutil"
)

// fakeRunner records stow invocations instead of running the real tool.
// An optional link function simulates the symlinks stow would create.
type fakeRunner struct {
	calls  []string
	adopts []bool
	failOn string
	link   func(pack string)
}

func (f *fakeRunner) Stow(pack string, adopt bool) (string, error) {
	f.calls = append(f.calls, pack)
	f.adopts = append(f.adopts, adopt)
	if pack == f.failOn {
		return "stow: ERROR: something broke", fmt.Errorf("exit status 1")
	}
	if f.link != nil {
		f.link(pack)
	}
	return "", nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Packages = []string{"zsh", "git"}
	cfg.Stow.Bin = "stow"
	cfg.Stow.Ignore = []string{"Brewfile", "install.sh"}
	cfg.Backup.Prefix = "dotstow-backup-"
	return cfg
}

func testEnv(t *testing.T) (*config.Config, *paths.Paths, string, string) {
	t.Helper()
	root := testutil.TempDir(t)
	home := testutil.CreateDir(t, root, "home")
	base := testutil.CreateDir(t, root, "dotfiles")

	p, err := paths.New(base,
		paths.WithTargetRoot(home),
		paths.WithBackupRoot(filepath.Join(root, "backups")))
	require.NoError(t, err)
	return testConfig(), p, base, home
}

// linkPack mirrors what stow --no-folding would do for a pack: one
// symlink per file, parents created as real directories.
func linkPack(t *testing.T, base, home, pack string) func(string) {
	return func(name string) {
		t.Helper()
		packDir := filepath.Join(base, name)
		_ = filepath.WalkDir(packDir, func(path string, entry os.DirEntry, err error) error {
			if err != nil || path == packDir || entry.IsDir() {
				return nil
			}
			rel, _ := filepath.Rel(packDir, path)
			target := filepath.Join(home, rel)
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return nil
			}
			_ = os.Symlink(path, target)
			return nil
		})
	}
}

func TestDeployPackages_StowsExistingPacks(t *testing.T) {
	cfg, p, base, _ := testEnv(t)
	testutil.CreateFile(t, base, "zsh/.zshrc", "")
	testutil.CreateFile(t, base, "git/.gitconfig", "")

	runner := &fakeRunner{}
	o := New(cfg, p, output.New(), runner)

	result, err := o.DeployPackages([]string{"zsh", "git"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"zsh", "git"}, result.Stowed)
	assert.Empty(t, result.Missing)
	assert.Equal(t, []string{"zsh", "git"}, runner.calls)
}

func TestDeployPackages_RecordsMissingPacks(t *testing.T) {
	cfg, p, base, _ := testEnv(t)
	testutil.CreateFile(t, base, "zsh/.zshrc", "")

	runner := &fakeRunner{}
	o := New(cfg, p, output.New(), runner)

	result, err := o.DeployPackages([]string{"zsh", "ghost"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"zsh"}, result.Stowed)
	assert.Equal(t, []string{"ghost"}, result.Missing)
	assert.Equal(t, []string{"zsh"}, runner.calls, "missing packs never reach the runner")
}

func TestDeployPackages_StopsAtFirstFailure(t *testing.T) {
	cfg, p, base, _ := testEnv(t)
	testutil.CreateFile(t, base, "a/.a", "")
	testutil.CreateFile(t, base, "b/.b", "")
	testutil.CreateFile(t, base, "c/.c", "")

	runner := &fakeRunner{failOn: "b"}
	o := New(cfg, p, output.New(), runner)

	result, err := o.DeployPackages([]string{"a", "b", "c"}, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStowFailed))
	assert.Equal(t, []string{"a"}, result.Stowed)
	assert.Equal(t, "b", result.Failed)
	assert.Contains(t, result.FailedOutput, "ERROR")
	assert.Equal(t, []string{"a", "b"}, runner.calls, "processing stops after the failing pack")
}

func TestDeployPackages_PassesAdoptThrough(t *testing.T) {
	cfg, p, base, _ := testEnv(t)
	testutil.CreateFile(t, base, "zsh/.zshrc", "")

	runner := &fakeRunner{}
	o := New(cfg, p, output.New(), runner)

	_, err := o.DeployPackages([]string{"zsh"}, true)
	require.NoError(t, err)
	require.Len(t, runner.adopts, 1)
	assert.True(t, runner.adopts[0])
}

func TestDeployBase_MissingSourceIsFatal(t *testing.T) {
	cfg, _, _, home := testEnv(t)
	p, err := paths.New("/nonexistent/dotfiles", paths.WithTargetRoot(home))
	require.NoError(t, err)

	o := New(cfg, p, output.New(), &fakeRunner{})
	err = o.DeployBase(Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSourceMissing))
}

func TestDeployBase_AbortsOnConflicts(t *testing.T) {
	cfg, p, base, home := testEnv(t)
	testutil.CreateFile(t, base, "zsh/.zshrc", "")
	testutil.CreateFile(t, home, ".zshrc", "existing\n")

	runner := &fakeRunner{}
	o := New(cfg, p, output.New(), runner)

	err := o.DeployBase(Options{Packs: []string{"zsh"}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConflictsFound))
	assert.Empty(t, runner.calls, "nothing is stowed when conflicts block deployment")
	assert.True(t, testutil.Exists(t, filepath.Join(home, ".zshrc")), "the conflicting file is untouched")
}

func TestDeployBase_AdoptSuppressesConflictAbort(t *testing.T) {
	cfg, p, base, home := testEnv(t)
	testutil.CreateFile(t, base, "zsh/.zshrc", "")
	testutil.CreateFile(t, home, ".zshrc", "existing\n")

	runner := &fakeRunner{}
	o := New(cfg, p, output.New(), runner)

	err := o.DeployBase(Options{Adopt: true, Packs: []string{"zsh"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"zsh"}, runner.calls)
	require.Len(t, runner.adopts, 1)
	assert.True(t, runner.adopts[0])
}

func TestDeployBase_ForceBacksUpAndRemovesConflicts(t *testing.T) {
	cfg, p, base, home := testEnv(t)
	testutil.CreateFile(t, base, "zsh/.zshrc", "from pack\n")
	conflicting := testutil.CreateFile(t, home, ".zshrc", "precious local config\n")

	runner := &fakeRunner{link: linkPack(t, base, home, "zsh")}
	o := New(cfg, p, output.New(), runner)

	err := o.DeployBase(Options{Force: true, Packs: []string{"zsh"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"zsh"}, runner.calls)

	// The conflicting file was replaced by the pack's symlink.
	assert.True(t, testutil.IsSymlink(t, conflicting))

	// Its content survived in exactly one timestamped backup directory.
	entries, err := os.ReadDir(p.BackupRoot())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	backed := filepath.Join(p.BackupRoot(), entries[0].Name(), ".zshrc")
	data, err := os.ReadFile(backed)
	require.NoError(t, err)
	assert.Equal(t, "precious local config\n", string(data))
}

func TestDeployBase_CreatesRequiredDirectories(t *testing.T) {
	cfg, p, base, home := testEnv(t)
	testutil.CreateFile(t, base, "zsh/.zshrc", "")

	o := New(cfg, p, output.New(), &fakeRunner{})
	require.NoError(t, o.DeployBase(Options{Packs: []string{"zsh"}}))

	info, err := os.Stat(filepath.Join(home, ".config"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	sshInfo, err := os.Stat(filepath.Join(home, ".ssh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), sshInfo.Mode().Perm())
}

func TestExpectedLinks_SkipsIgnoredFiles(t *testing.T) {
	cfg, p, base, home := testEnv(t)
	testutil.CreateFile(t, base, "zsh/.zshrc", "")
	testutil.CreateFile(t, base, "zsh/.config/zsh/aliases.zsh", "")
	testutil.CreateFile(t, base, "zsh/Brewfile", "")
	testutil.CreateFile(t, base, "zsh/install.sh", "")

	o := New(cfg, p, output.New(), &fakeRunner{})
	links := o.ExpectedLinks("zsh")

	assert.ElementsMatch(t, []string{
		filepath.Join(home, ".zshrc"),
		filepath.Join(home, ".config/zsh/aliases.zsh"),
	}, links)
}
