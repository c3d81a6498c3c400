// Package embed builds copy-paste snippets that place a badge on a site.
package embed

import (
	"AIDIR-Backend/internal/badge"
	"AIDIR-Backend/internal/domain"
	"html"
	"strconv"
	"strings"
)

// Snippets holds every supported embed form.
type Snippets struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	JSX      string `json:"jsx"`
}

type Generator struct {
	Platform string
}

func NewGenerator(platform string) *Generator {
	return &Generator{Platform: platform}
}

// HTML returns an anchor wrapping a lazily loaded img. Attribute values are escaped.
func (g *Generator) HTML(productURL, badgeURL, productName string, size domain.Size) string {
	d := badge.DimensionsFor(size)
	var b strings.Builder
	b.WriteString(`<a href="` + html.EscapeString(productURL) + `" target="_blank" rel="noopener noreferrer">` + "\n")
	b.WriteString(`  <img src="` + html.EscapeString(badgeURL) + `" alt="` + html.EscapeString(g.alt(productName)) +
		`" width="` + strconv.Itoa(d.Width) + `" height="` + strconv.Itoa(d.Height) + `" loading="lazy" />` + "\n")
	b.WriteString(`</a>`)
	return b.String()
}

// Markdown returns an image link. Brackets in the alt text are escaped.
// Markdown images carry no dimensions, so size is ignored.
func (g *Generator) Markdown(productURL, badgeURL, productName string, _ domain.Size) string {
	alt := markdownEscaper.Replace(g.alt(productName))
	return "[![" + alt + "](" + badgeURL + ")](" + productURL + ")"
}

// JSX returns an anchor wrapping a framework Image component.
func (g *Generator) JSX(productURL, badgeURL, productName string, size domain.Size) string {
	d := badge.DimensionsFor(size)
	lines := []string{
		`<a href="` + jsxAttr(productURL) + `" target="_blank" rel="noopener noreferrer">`,
		`  <Image`,
		`    src="` + jsxAttr(badgeURL) + `"`,
		`    alt="` + jsxAttr(g.alt(productName)) + `"`,
		`    width={` + strconv.Itoa(d.Width) + `}`,
		`    height={` + strconv.Itoa(d.Height) + `}`,
		`  />`,
		`</a>`,
	}
	return strings.Join(lines, "\n")
}

// All returns the three forms for the same badge.
func (g *Generator) All(productURL, badgeURL, productName string, size domain.Size) Snippets {
	return Snippets{
		HTML:     g.HTML(productURL, badgeURL, productName, size),
		Markdown: g.Markdown(productURL, badgeURL, productName, size),
		JSX:      g.JSX(productURL, badgeURL, productName, size),
	}
}

func (g *Generator) alt(productName string) string {
	return badge.AltText(productName, g.Platform)
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

// jsxAttr escapes a quoted JSX attribute. JSX decodes HTML entities there
// but not backslash escapes.
func jsxAttr(s string) string {
	return html.EscapeString(s)
}
