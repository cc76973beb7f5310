package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crawlreceipt/internal/platform/config"
)

func TestFromCalibration(t *testing.T) {
	cal, err := config.DefaultCalibration()
	require.NoError(t, err)

	cat := FromCalibration(cal.Crawlers)
	require.Equal(t, 15, cat.Len())

	all := cat.All()
	assert.Equal(t, "GPTBot", all[0].Name)
	assert.Equal(t, "OpenAI", all[0].Company)
	assert.Equal(t, "Diffbot", all[len(all)-1].Name)
}

func TestFromCalibration_DefaultsPatternToName(t *testing.T) {
	cat := FromCalibration([]config.CrawlerEntry{{Name: "NewBot", Company: "New Co"}})
	assert.Equal(t, []string{"NewBot"}, cat.All()[0].UserAgentPatterns)
}

func TestCatalogIsImmutable(t *testing.T) {
	src := []Crawler{{Name: "GPTBot", Company: "OpenAI", UserAgentPatterns: []string{"GPTBot"}}}
	cat := New(src)

	src[0].Name = "changed"
	src[0].UserAgentPatterns[0] = "changed"
	assert.Equal(t, "GPTBot", cat.All()[0].Name)
	assert.Equal(t, "GPTBot", cat.All()[0].UserAgentPatterns[0])

	all := cat.All()
	all[0].Company = "changed"
	assert.Equal(t, "OpenAI", cat.All()[0].Company)
}

func TestMatch(t *testing.T) {
	cat := New([]Crawler{
		{Name: "ClaudeBot", Company: "Anthropic", UserAgentPatterns: []string{"ClaudeBot", "Claude-Web"}},
		{Name: "FacebookBot", Company: "Meta", UserAgentPatterns: []string{"FacebookBot", "meta-externalagent"}},
	})

	cases := []struct {
		name      string
		userAgent string
		want      string
		found     bool
	}{
		{"primary pattern", "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; ClaudeBot/1.0; +claudebot@anthropic.com)", "ClaudeBot", true},
		{"secondary pattern", "Claude-Web/1.0", "ClaudeBot", true},
		{"case insensitive", "META-EXTERNALAGENT/1.1", "FacebookBot", true},
		{"browser", "Mozilla/5.0 (X11; Linux x86_64) Firefox/120.0", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cr, ok := cat.Match(tc.userAgent)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, cr.Name)
		})
	}
}
