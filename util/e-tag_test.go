package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateETag_StableAndQuoted(t *testing.T) {
	a := GenerateETag([]string{"x", "y"})
	b := GenerateETag([]string{"x", "y"})

	assert.Equal(t, a, b)
	assert.Len(t, a, 42)
	assert.Equal(t, byte('"'), a[0])
	assert.NotEqual(t, a, GenerateETag([]string{"y", "x"}))
	assert.Equal(t, GenerateETag("abc"), GenerateETag([]byte("abc")))
}

func TestETagMatches(t *testing.T) {
	tag := GenerateETag("payload")

	assert.True(t, ETagMatches(tag, tag))
	assert.True(t, ETagMatches(`"other", `+tag, tag))
	assert.True(t, ETagMatches("W/"+tag, tag))
	assert.True(t, ETagMatches("*", tag))
	assert.False(t, ETagMatches("", tag))
	assert.False(t, ETagMatches(`"other"`, tag))
}
