package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRichText(t *testing.T) {
	assert.Equal(t, "", RichText("   "))
	assert.Equal(t, "<p><strong>Bold</strong></p>", RichText("<p><strong>Bold</strong></p>"))
	assert.Equal(t, "<p>Hello</p>", RichText("<p>Hello</p><script>alert('xss')</script>"))
	assert.NotContains(t, RichText(`<a href="javascript:alert(1)">x</a>`), "javascript:")
	assert.NotContains(t, RichText(`<b onclick="alert(1)">x</b>`), "onclick")
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Sunset", StripTags("<em>Sunset</em>"))
	assert.Equal(t, "Plain", StripTags(" Plain "))
}
