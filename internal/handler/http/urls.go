package http

import (
	"AIDIR-Backend/internal/domain"
	"net/url"
	"strings"
)

// Links строит публичные URL продукта и бейджа.
type Links struct {
	BaseURL     string
	ProductPath string
}

func NewLinks(baseURL, productPath string) Links {
	if productPath == "" {
		productPath = "/"
	}
	if !strings.HasPrefix(productPath, "/") {
		productPath = "/" + productPath
	}
	if !strings.HasSuffix(productPath, "/") {
		productPath += "/"
	}
	return Links{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		ProductPath: productPath,
	}
}

// Home returns the site root.
func (l Links) Home() string {
	return l.BaseURL + "/"
}

// ProductURL returns the public page of the product.
func (l Links) ProductURL(slug string) string {
	return l.BaseURL + l.ProductPath + url.PathEscape(slug)
}

// BadgeURL returns the image URL. Default parameters are omitted.
func (l Links) BadgeURL(slug string, variant domain.Variant, size domain.Size, theme domain.Theme) string {
	q := url.Values{}
	if variant != domain.DefaultVariant {
		q.Set("variant", string(variant))
	}
	if size != domain.DefaultSize {
		q.Set("size", string(size))
	}
	if theme != domain.DefaultTheme {
		q.Set("theme", string(theme))
	}

	u := l.BaseURL + "/badge/" + url.PathEscape(slug)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// ClickURL returns the tracked redirect to the product page.
func (l Links) ClickURL(slug string) string {
	return l.BaseURL + "/badge/" + url.PathEscape(slug) + "/click"
}
