package embed

import (
	"AIDIR-Backend/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Markdown(t *testing.T) {
	g := NewGenerator("X")

	got := g.Markdown("https://x/p/foo", "https://x/badge/foo", "foo", domain.SizeMedium)
	assert.Equal(t, "[![foo - Featured on X](https://x/badge/foo)](https://x/p/foo)", got)

	got = g.Markdown("https://x/p/foo", "https://x/badge/foo", "foo [beta]", domain.SizeSmall)
	assert.Equal(t, `[![foo \[beta\] - Featured on X](https://x/badge/foo)](https://x/p/foo)`, got)
}

func TestGenerator_HTML(t *testing.T) {
	g := NewGenerator("AI Directory")

	got := g.HTML("https://x/p/foo", "https://x/badge/foo?size=small&theme=dark", "Foo", domain.SizeSmall)
	want := "<a href=\"https://x/p/foo\" target=\"_blank\" rel=\"noopener noreferrer\">\n" +
		"  <img src=\"https://x/badge/foo?size=small&amp;theme=dark\" alt=\"Foo - Featured on AI Directory\" width=\"180\" height=\"40\" loading=\"lazy\" />\n" +
		"</a>"
	assert.Equal(t, want, got)
}

func TestGenerator_HTMLEscapesName(t *testing.T) {
	g := NewGenerator("X")

	got := g.HTML("https://x/p/foo", "https://x/badge/foo", `"><script>alert(1)</script>`, domain.SizeMedium)
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&#34;&gt;&lt;script&gt;")
	assert.Contains(t, got, `width="220" height="48"`)
}

func TestGenerator_JSX(t *testing.T) {
	g := NewGenerator("X")

	got := g.JSX("https://x/p/foo", "https://x/badge/foo", "foo", domain.SizeLarge)
	want := "<a href=\"https://x/p/foo\" target=\"_blank\" rel=\"noopener noreferrer\">\n" +
		"  <Image\n" +
		"    src=\"https://x/badge/foo\"\n" +
		"    alt=\"foo - Featured on X\"\n" +
		"    width={260}\n" +
		"    height={56}\n" +
		"  />\n" +
		"</a>"
	assert.Equal(t, want, got)
}

func TestGenerator_DefaultSize(t *testing.T) {
	g := NewGenerator("X")

	assert.Contains(t, g.HTML("u", "b", "n", ""), `width="220" height="48"`)
	assert.Contains(t, g.JSX("u", "b", "n", ""), "width={220}")
}

func TestGenerator_MarkdownIgnoresSize(t *testing.T) {
	g := NewGenerator("X")

	small := g.Markdown("https://x/p/foo", "https://x/badge/foo", "foo", domain.SizeSmall)
	assert.Equal(t, small, g.Markdown("https://x/p/foo", "https://x/badge/foo", "foo", domain.SizeLarge))
	assert.Equal(t, small, g.Markdown("https://x/p/foo", "https://x/badge/foo", "foo", ""))
}

func TestGenerator_All(t *testing.T) {
	g := NewGenerator("X")
	s := g.All("https://x/p/foo", "https://x/badge/foo", "foo", domain.SizeMedium)

	assert.Equal(t, g.HTML("https://x/p/foo", "https://x/badge/foo", "foo", domain.SizeMedium), s.HTML)
	assert.Equal(t, g.Markdown("https://x/p/foo", "https://x/badge/foo", "foo", domain.SizeMedium), s.Markdown)
	assert.Equal(t, g.JSX("https://x/p/foo", "https://x/badge/foo", "foo", domain.SizeMedium), s.JSX)
}
