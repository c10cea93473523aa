package cssvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBalanceValidator_ValidSelector(t *testing.T) {
	v := TokenBalanceValidator{}

	cases := []struct {
		name     string
		selector string
		want     bool
	}{
		{"plain class", ".ad-banner", true},
		{"attribute selector", "a[href^=\"https://ads.example\"]", true},
		{"unbalanced bracket", "a[href^=\"https://ads.example\"", false},
		{"nested function", "div:not([class~=\"ad\"])", true},
		{"unbalanced paren", "div:not([class~=\"ad\")", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, v.ValidSelector(tc.selector))
		})
	}
}

func TestTokenBalanceValidator_ValidStyle(t *testing.T) {
	v := TokenBalanceValidator{}
	assert.True(t, v.ValidStyle("display: none !important;"))
	assert.False(t, v.ValidStyle("display: rgb(0,0,0;"))
}
