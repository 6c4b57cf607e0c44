package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCommentText(t *testing.T) {
	got, err := NormalizeCommentText("  nice work \n")
	require.NoError(t, err)
	assert.Equal(t, "nice work", got)

	exact := strings.Repeat("a", MaxCommentLength)
	got, err = NormalizeCommentText("  " + exact + "  ")
	require.NoError(t, err)
	assert.Equal(t, exact, got)

	_, err = NormalizeCommentText(exact + "a")
	assert.ErrorIs(t, err, ErrCommentTooLong)

	_, err = NormalizeCommentText(" \t\n ")
	assert.ErrorIs(t, err, ErrCommentEmpty)
}

func TestNormalizeCommentTextCountsCharacters(t *testing.T) {
	// 500 two-byte runes are still 500 characters.
	_, err := NormalizeCommentText(strings.Repeat("é", MaxCommentLength))
	assert.NoError(t, err)
}

func TestIsOwner(t *testing.T) {
	d := &Design{OwnerID: "o"}
	assert.True(t, d.IsOwner("o"))
	assert.False(t, d.IsOwner("u"))
	assert.False(t, d.IsOwner(""))
	assert.False(t, (*Design)(nil).IsOwner("o"))
}
