package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeq(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		s := Seq(32)
		assert.Len(t, s, 32)
		for _, r := range s {
			ok := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			assert.True(t, ok, "unexpected rune %q", r)
		}
		seen[s] = true
	}
	assert.Len(t, seen, 20, "32-rune sequences must not repeat")
}

func TestNum(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := Num(10)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 10)
	}
}
