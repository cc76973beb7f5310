package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "crawlreceipt/pkg/domain-errors"
)

func TestParsePathDomain(t *testing.T) {
	cases := map[string]string{
		"example.com":                   "example.com",
		"https%3A%2F%2FExample.com%2Fa": "example.com",
		"http://example.com/blog":       "example.com",
		"%E2%9C%93.example":             "✓.example",
		"50%off.example":                "50%off.example",
		"user%40example.com%3A8080":     "example.com",
	}
	for in, want := range cases {
		key, err := parsePathDomain(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, key.String(), in)
	}

	_, err := parsePathDomain("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
