package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafe(t *testing.T) {
	s := New()

	t.Run("PlainText", func(t *testing.T) {
		assert.True(t, s.IsSafe("Hello, nice article!"))
		assert.True(t, s.IsSafe("Tom & Jerry > everything"))
	})

	t.Run("BenignMarkup", func(t *testing.T) {
		assert.True(t, s.IsSafe("<b>bold</b> and <i>italic</i>"))
	})

	t.Run("ScriptTag", func(t *testing.T) {
		assert.False(t, s.IsSafe(`<script>alert("xss")</script>`))
	})

	t.Run("EventHandler", func(t *testing.T) {
		assert.False(t, s.IsSafe(`<img src="x" onerror="alert(1)">`))
	})

	t.Run("JavascriptURL", func(t *testing.T) {
		assert.False(t, s.IsSafe(`<a href="javascript:alert(1)">click</a>`))
	})
}
