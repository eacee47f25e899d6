package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateOnRuneBoundary(t *testing.T) {
	assert.Equal(t, "abc", truncateOnRuneBoundary("abc", 10))
	assert.Equal(t, "ab", truncateOnRuneBoundary("abcd", 2))

	// "é" is 2 bytes; a cut in the middle must back off to the rune start.
	assert.Equal(t, "a", truncateOnRuneBoundary("aé", 2))
	assert.Equal(t, "aé", truncateOnRuneBoundary("aéb", 3))

	long := strings.Repeat("日", 4000) // 3 bytes each, 12000 total
	got := truncateOnRuneBoundary(long, maxEmbeddingBytes)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxEmbeddingBytes)
	assert.Equal(t, maxEmbeddingBytes/3*3, len(got))
}
