package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsMarkup(t *testing.T) {
	assert.Equal(t, "Instagram", Sanitize("<b>Instagram</b>"))
	assert.Equal(t, "goal met", Sanitize(`goal met<script>alert(1)</script>`))
	assert.Equal(t, "TikTok", Sanitize("TikTok"))
}
