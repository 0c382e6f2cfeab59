package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUuid(t *testing.T) {
	first := GenerateUuid()
	second := GenerateUuid()

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`), first)
	assert.NotEqual(t, first, second)
}

func TestGenerateJoinCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-Z]{4}$`)

	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, GenerateJoinCode())
	}
}

func TestIsDirectoryWritable(t *testing.T) {
	assert.True(t, IsDirectoryWritable(t.TempDir()))
	assert.False(t, IsDirectoryWritable("/nonexistent/path"))
}
