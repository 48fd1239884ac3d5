package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 18, ContentHeight(24))
	assert.Equal(t, 0, ContentHeight(4))
}

func TestIsTooSmall(t *testing.T) {
	assert.False(t, IsTooSmall(80, 24))
	assert.True(t, IsTooSmall(79, 24))
	assert.True(t, IsTooSmall(80, 23))
}

func TestRenderFooter_DropsOverflowingHints(t *testing.T) {
	hints := []KeyHint{
		{"Enter", "Select"},
		{"Esc", "Back"},
		{"Ctrl+C", "Quit"},
	}

	wide := RenderFooter(hints, 120)
	assert.Contains(t, wide, "Quit")

	narrow := RenderFooter(hints, 30)
	assert.Contains(t, narrow, "Select")
	assert.NotContains(t, narrow, "Quit")
}

func TestRenderMinSizeMessage(t *testing.T) {
	out := RenderMinSizeMessage(60, 20)
	assert.Contains(t, out, "80 x 24")
	assert.Contains(t, out, "60 x 20")
	assert.Equal(t, 20, len(strings.Split(out, "\n")))
}
