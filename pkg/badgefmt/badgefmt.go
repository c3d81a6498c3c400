// Package badgefmt contains the string helpers shared by the badge renderer,
// the click tracker and the HTTP layer.
package badgefmt

import (
	"math/big"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxSlugLength is the longest product slug accepted by IsValidSlug.
const MaxSlugLength = 100

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

	// A single-pass replacer never re-escapes the ampersands it produced.
	xmlReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
)

// EscapeXML escapes every character that is not safe inside XML text or a
// quoted attribute value. Invalid UTF-8 and runes outside the XML 1.0 Char
// range are replaced with U+FFFD.
func EscapeXML(s string) string {
	return xmlReplacer.Replace(sanitizeXMLChars(s))
}

func sanitizeXMLChars(s string) string {
	s = strings.ToValidUTF8(s, string(utf8.RuneError))
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return utf8.RuneError
	}, s)
}

// Char ::= #x9 | #xA | #xD | [#x20-#xD7FF] | [#xE000-#xFFFD] | [#x10000-#x10FFFF]
func isXMLChar(r rune) bool {
	switch {
	case r == 0x9, r == 0xA, r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// FormatUpvoteCount abbreviates an upvote count for display on a badge:
// 999 -> "999", 1249 -> "1.2K", 10000 -> "10K+".
func FormatUpvoteCount(n int) string {
	if n < 0 {
		n = 0
	}
	switch {
	case n < 1000:
		return strconv.Itoa(n)
	case n < 10000:
		tenths := roundTenths(float64(n) / 1000)
		return strconv.FormatInt(tenths/10, 10) + "." + strconv.FormatInt(tenths%10, 10) + "K"
	default:
		return "10K+"
	}
}

// roundTenths rounds x to tenths like Number.prototype.toFixed(1): on the
// exact binary value of x, ties going up. 1.15 is stored as 1.1499.. and
// gives 11, 1.25 is exact and gives 13.
func roundTenths(x float64) int64 {
	v := new(big.Float).SetPrec(128).SetFloat64(x)
	v.Mul(v, big.NewFloat(10))
	v.Add(v, big.NewFloat(0.5))
	t, _ := v.Int64()
	return t
}

// ExtractDomain returns the lower-cased hostname of an absolute URL.
// Empty input, relative references and unparseable strings yield false.
func ExtractDomain(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	return host, true
}

// IsValidSlug reports whether slug is a well-formed product slug.
func IsValidSlug(slug string) bool {
	if slug == "" || len(slug) > MaxSlugLength {
		return false
	}
	return slugPattern.MatchString(slug)
}
