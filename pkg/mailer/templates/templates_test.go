package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotification(t *testing.T) {
	subject, text, html, err := Render(Notification, map[string]any{
		"Name":      "Ana",
		"Title":     "Design Liked",
		"Message":   `Ben liked your design "Linen <set>"`,
		"ActionURL": "https://gallery.example/designs/1",
		"AppName":   "Style Gallery",
	})
	require.NoError(t, err)
	assert.Equal(t, "Design Liked | Style Gallery", subject)
	assert.Contains(t, text, "Hi Ana,")
	assert.Contains(t, text, `Ben liked your design "Linen <set>"`)
	assert.Contains(t, text, "https://gallery.example/designs/1")
	assert.Contains(t, html, "Linen &lt;set&gt;")
	assert.Contains(t, html, `href="https://gallery.example/designs/1"`)
}

func TestRenderDefaults(t *testing.T) {
	subject, text, _, err := Render(Notification, map[string]any{"Message": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "New activity | Style Gallery", subject)
	assert.Contains(t, text, "Hi there,")
	assert.NotContains(t, text, "Open it here")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", nil)
	assert.Error(t, err)
}
