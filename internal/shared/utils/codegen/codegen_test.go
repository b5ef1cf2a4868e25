package codegen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]+$`)

	for _, n := range []int{1, 10, 12} {
		code, err := Generate(n)
		require.NoError(t, err)
		assert.Len(t, code, n)
		assert.Regexp(t, pattern, code)
	}
}

func TestGenerateIsNotConstant(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := Generate(10)
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 45)
}
