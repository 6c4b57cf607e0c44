package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSet(t *testing.T) {
	s := NewIDSet("b", "a", "", "a")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has(""))

	assert.True(t, s.Add("c"))
	assert.False(t, s.Add("c"))
	assert.False(t, s.Add(""))
	assert.Equal(t, []string{"a", "b", "c"}, s.Slice())

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))

	clone := s.Clone()
	clone.Add("z")
	assert.False(t, s.Has("z"))
}
