package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrConflictsFound, "conflicts block deployment")
	assert.Equal(t, "[CONFLICTS_FOUND] conflicts block deployment", err.Error())
	assert.Equal(t, ErrConflictsFound, err.Code)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrStowFailed, "stow failed for pack %q", "zsh")
	assert.Contains(t, err.Error(), `pack "zsh"`)
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := Wrap(cause, ErrStowFailed, "stow failed")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "exit status 1")

	assert.Nil(t, Wrap(nil, ErrStowFailed, "ignored"))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := Newf(ErrBackupPartial, "backed up 3, 2 failed")
	assert.True(t, stderrors.Is(err, New(ErrBackupPartial, "")))
	assert.False(t, stderrors.Is(err, New(ErrBackupCreate, "")))
}

func TestIsCode_ThroughWrapping(t *testing.T) {
	inner := New(ErrSourceMissing, "no dotfiles")
	outer := fmt.Errorf("deploy: %w", inner)

	assert.True(t, IsCode(outer, ErrSourceMissing))
	assert.False(t, IsCode(outer, ErrStowFailed))
	assert.Equal(t, ErrUnknown, CodeOf(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrBackupPartial, "partial").WithDetail("failed", 2)
	require.NotNil(t, err.Details)
	assert.Equal(t, 2, err.Details["failed"])
}
