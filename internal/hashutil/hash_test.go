package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastHash_Stable(t *testing.T) {
	a := FastHashString("example.com")
	b := FastHashString("example.com")
	assert.Equal(t, a, b)
}

func TestFastHash_DistinctInputs(t *testing.T) {
	a := FastHashString("example.com")
	b := FastHashString("example.org")
	assert.NotEqual(t, a, b)
}

func TestFastHash_BytesMatchesString(t *testing.T) {
	s := "sub.example.com"
	assert.Equal(t, FastHashString(s), FastHash([]byte(s)))
}
