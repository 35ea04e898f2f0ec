package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlural(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0 days"},
		{1, "1 day"},
		{7, "7 days"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Plural(tc.n, "day"))
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Practice", 4, 2, 100)
	assert.Contains(t, h, "Hanzi")
	assert.Contains(t, h, "Practice")
	assert.Contains(t, h, "2 days")
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "enter", Description: "Select"}, {Key: "esc", Description: "Back"}}, 80)
	assert.True(t, strings.Contains(f, "enter") && strings.Contains(f, "Back"))
}
