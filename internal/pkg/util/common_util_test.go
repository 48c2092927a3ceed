package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	t.Run("short string untouched", func(t *testing.T) {
		assert.Equal(t, "hello", TruncateRunes("hello", 50))
	})

	t.Run("exact limit untouched", func(t *testing.T) {
		s := strings.Repeat("a", 50)
		assert.Equal(t, s, TruncateRunes(s, 50))
	})

	t.Run("ascii truncated", func(t *testing.T) {
		s := strings.Repeat("a", 60)
		assert.Equal(t, strings.Repeat("a", 50), TruncateRunes(s, 50))
	})

	t.Run("multibyte counted by rune", func(t *testing.T) {
		s := strings.Repeat("好", 60)
		got := TruncateRunes(s, 50)
		assert.Equal(t, strings.Repeat("好", 50), got)
		assert.Equal(t, 50, len([]rune(got)))
	})

	t.Run("emoji not split", func(t *testing.T) {
		s := strings.Repeat("🎨", 5)
		got := TruncateRunes(s, 3)
		assert.Equal(t, strings.Repeat("🎨", 3), got)
	})
}
