package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictKind_RoundTrip(t *testing.T) {
	for _, kind := range []ConflictKind{ConflictFile, ConflictSymlink} {
		parsed, err := ParseConflictKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseConflictKind("directory")
	assert.Error(t, err)
}

func TestEncode_File(t *testing.T) {
	rec := NewFileConflict("/home/u/.zshrc")
	assert.Equal(t, "file:/home/u/.zshrc", rec.Encode())
}

func TestEncode_Symlink(t *testing.T) {
	rec := NewSymlinkConflict("/home/u/.config/nvim", "/opt/other")
	assert.Equal(t, "symlink:/home/u/.config/nvim:/opt/other", rec.Encode())
}

func TestEncode_WithPackage(t *testing.T) {
	rec := NewFileConflict("/home/u/.zshrc")
	rec.Package = "zsh"
	assert.Equal(t, "zsh:file:/home/u/.zshrc", rec.Encode())
}

func TestFileConflictNeverCarriesLinkTarget(t *testing.T) {
	rec := NewFileConflict("/home/u/.zshrc")
	assert.Empty(t, rec.LinkTarget)
	assert.NotContains(t, rec.Encode(), "::")
}

func TestParseConflict_File(t *testing.T) {
	rec, err := ParseConflict("file:/home/u/.zshrc")
	require.NoError(t, err)
	assert.Equal(t, ConflictFile, rec.Kind)
	assert.Equal(t, "/home/u/.zshrc", rec.Path)
	assert.Empty(t, rec.Package)
	assert.Empty(t, rec.LinkTarget)
}

func TestParseConflict_Symlink(t *testing.T) {
	rec, err := ParseConflict("symlink:/home/u/.config/nvim:/opt/other")
	require.NoError(t, err)
	assert.Equal(t, ConflictSymlink, rec.Kind)
	assert.Equal(t, "/home/u/.config/nvim", rec.Path)
	assert.Equal(t, "/opt/other", rec.LinkTarget)
}

func TestParseConflict_WithPackagePrefix(t *testing.T) {
	rec, err := ParseConflict("nvim:symlink:/home/u/.config/nvim:/opt/other")
	require.NoError(t, err)
	assert.Equal(t, "nvim", rec.Package)
	assert.Equal(t, ConflictSymlink, rec.Kind)
	assert.Equal(t, "/home/u/.config/nvim", rec.Path)
	assert.Equal(t, "/opt/other", rec.LinkTarget)
}

func TestParseConflict_FilePathWithColons(t *testing.T) {
	// File paths keep every colon after the kind field.
	rec, err := ParseConflict("file:/home/u/weird:name:with:colons")
	require.NoError(t, err)
	assert.Equal(t, ConflictFile, rec.Kind)
	assert.Equal(t, "/home/u/weird:name:with:colons", rec.Path)
}

func TestParseConflict_SymlinkPathWithColons(t *testing.T) {
	// The link target is the last field, so colons in the path survive.
	rec, err := ParseConflict("symlink:/home/u/weird:dir:/opt/target")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/weird:dir", rec.Path)
	assert.Equal(t, "/opt/target", rec.LinkTarget)
}

func TestParseConflict_Malformed(t *testing.T) {
	for _, input := range []string{"", "file", "nonsense", "pkg:nonsense:/x", "file:"} {
		_, err := ParseConflict(input)
		assert.Error(t, err, "input %q should not parse", input)
	}
}

func TestParseConflict_RoundTrip(t *testing.T) {
	records := []ConflictRecord{
		NewFileConflict("/home/u/.zshrc"),
		NewSymlinkConflict("/home/u/.config/nvim", "/opt/other"),
	}
	records[0].Package = "zsh"
	records[1].Package = "nvim"

	for _, rec := range records {
		parsed, err := ParseConflict(rec.Encode())
		require.NoError(t, err)
		assert.Equal(t, rec, parsed)
	}
}

func TestEncodeConflicts(t *testing.T) {
	out := EncodeConflicts([]ConflictRecord{
		NewFileConflict("/a"),
		NewSymlinkConflict("/b", "/c"),
	})
	assert.Equal(t, "file:/a\nsymlink:/b:/c", out)
}
