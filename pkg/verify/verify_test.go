package verify

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotstow/pkg/testutil"
	"github.com/arthur-debert/dotstow/pkg/types"
)

func TestVerify_AllManaged(t *testing.T) {
	root := testutil.TempDir(t)
	home := testutil.CreateDir(t, root, "home")
	source := testutil.CreateDir(t, root, "dotfiles")
	src := testutil.CreateFile(t, source, "zsh/.zshrc", "")
	link := testutil.CreateSymlink(t, home, ".zshrc", src)

	report := New(source).Verify([]string{link})
	assert.Equal(t, 1, report.Verified)
	assert.True(t, report.OK())
	assert.Equal(t, "1 links verified, 0 issues", report.Summary())
}

func TestVerify_ManagedViaAncestorSymlink(t *testing.T) {
	root := testutil.TempDir(t)
	home := testutil.CreateDir(t, root, "home")
	source := testutil.CreateDir(t, root, "dotfiles")
	pkgDir := testutil.CreateDir(t, source, "nvim/.config/nvim")
	testutil.CreateFile(t, source, "nvim/.config/nvim/init.lua", "")
	testutil.CreateSymlink(t, home, ".config/nvim", pkgDir)

	report := New(source).Verify([]string{filepath.Join(home, ".config/nvim/init.lua")})
	assert.Equal(t, 1, report.Verified)
	assert.True(t, report.OK())
}

func TestVerify_ExistsButNotManaged(t *testing.T) {
	root := testutil.TempDir(t)
	home := testutil.CreateDir(t, root, "home")
	source := testutil.CreateDir(t, root, "dotfiles")
	p := testutil.CreateFile(t, home, ".zshrc", "local file\n")

	report := New(source).Verify([]string{p})
	assert.Zero(t, report.Verified)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, types.VerifyIssue{Path: p, Reason: ReasonNotManaged}, report.Issues[0])
}

func TestVerify_NotFound(t *testing.T) {
	root := testutil.TempDir(t)
	source := testutil.CreateDir(t, root, "dotfiles")
	missing := filepath.Join(root, "home", ".zshrc")

	report := New(source).Verify([]string{missing})
	require.Len(t, report.Issues, 1)
	assert.Equal(t, ReasonNotFound, report.Issues[0].Reason)
	assert.False(t, report.OK())
}

func TestVerify_MixedResults(t *testing.T) {
	root := testutil.TempDir(t)
	home := testutil.CreateDir(t, root, "home")
	source := testutil.CreateDir(t, root, "dotfiles")
	src := testutil.CreateFile(t, source, "zsh/.zshrc", "")
	good := testutil.CreateSymlink(t, home, ".zshrc", src)
	stray := testutil.CreateFile(t, home, ".gitconfig", "x\n")
	missing := filepath.Join(home, ".tmux.conf")

	report := New(source).Verify([]string{good, stray, missing})
	assert.Equal(t, 1, report.Verified)
	assert.Len(t, report.Issues, 2)
	assert.Equal(t, "1 links verified, 2 issues", report.Summary())
}
