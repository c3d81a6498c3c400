package badgefmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeXML(t *testing.T) {
	escaped := EscapeXML(`<a>&'"`)

	assert.Equal(t, "&lt;a&gt;&amp;&apos;&quot;", escaped)

	// Strip the entities we produced; nothing raw may remain.
	stripped := escaped
	for _, entity := range []string{"&amp;", "&lt;", "&gt;", "&quot;", "&apos;"} {
		stripped = strings.ReplaceAll(stripped, entity, "")
	}
	assert.NotContains(t, stripped, "<")
	assert.NotContains(t, stripped, ">")
	assert.NotContains(t, stripped, "&")
	assert.NotContains(t, stripped, `"`)
	assert.NotContains(t, stripped, "'")
}

func TestEscapeXML_ReplacesCharsOutsideXML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme\x01Bot", "Acme\uFFFDBot"},
		{"bad\xffutf8", "bad\uFFFDutf8"},
		{"nul\x00 & esc\x1b", "nul\uFFFD &amp; esc\uFFFD"},
		{"tab\tnl\ncr\r", "tab\tnl\ncr\r"},
		{"\uFFFE\U0001F680", "\uFFFD\U0001F680"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeXML(tt.in), "EscapeXML(%q)", tt.in)
	}
}

func TestEscapeXML_NoDoubleEscape(t *testing.T) {
	assert.Equal(t, "&amp;amp;", EscapeXML("&amp;"))
	assert.Equal(t, "Plain name", EscapeXML("Plain name"))
}

func TestFormatUpvoteCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{-5, "0"},
		{0, "0"},
		{42, "42"},
		{999, "999"},
		{1000, "1.0K"},
		{1150, "1.1K"},
		{1249, "1.2K"},
		{1250, "1.3K"},
		{1450, "1.4K"},
		{2050, "2.0K"},
		{2250, "2.3K"},
		{5555, "5.6K"},
		{9949, "9.9K"},
		{9950, "9.9K"},
		{9999, "10.0K"},
		{10000, "10K+"},
		{250000, "10K+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUpvoteCount(tt.in), "FormatUpvoteCount(%d)", tt.in)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"full url", "https://news.ycombinator.com/item?id=1", "news.ycombinator.com", true},
		{"port stripped", "http://localhost:3000/page", "localhost", true},
		{"upper case host", "https://WWW.Example.COM/", "www.example.com", true},
		{"not a url", "not a url", "", false},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
		{"relative", "/products/foo", "", false},
		{"bad escape", "http://%zz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDomain(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("chat-gpt-4"))
	assert.True(t, IsValidSlug("a"))
	assert.True(t, IsValidSlug(strings.Repeat("a", MaxSlugLength)))

	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug(strings.Repeat("a", MaxSlugLength+1)))
	assert.False(t, IsValidSlug("Upper"))
	assert.False(t, IsValidSlug("with space"))
	assert.False(t, IsValidSlug("under_score"))
	assert.False(t, IsValidSlug("../etc"))
}
