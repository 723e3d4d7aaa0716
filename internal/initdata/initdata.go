// Package initdata parses and verifies the signed payload a Telegram Mini-App
// host hands to the page as window.Telegram.WebApp.initData.
package initdata

import (
	"net/url"
	"sort"
	"strings"
)

// HashKey is the field carrying the payload signature.
const HashKey = "hash"

// Values is the flat key/value view of an init-data string.
type Values map[string]string

// Parse decodes a query-string encoded init-data payload the way a browser's
// URLSearchParams does: pairs split on '&' only, '+' is a space, and a
// malformed percent escape is kept as literal text. When a key repeats, the
// last occurrence wins. The error return is always nil today.
func Parse(raw string) (Values, error) {
	values := make(Values)
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		values[unescape(key)] = unescape(value)
	}
	return values, nil
}

// unescape percent-decodes s, leaving invalid sequences untouched.
func unescape(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if !strings.Contains(s, "%") {
		return s
	}

	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		b = append(b, s[i])
	}
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// DataCheckString builds the string Telegram signs: every pair except the
// hash, sorted by key, formatted as key=value and joined with newlines.
func (v Values) DataCheckString() string {
	pairs := make([]string, 0, len(v))
	for key, value := range v {
		if key == HashKey {
			continue
		}
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\n")
}

// Encode renders the values back into a query string.
func (v Values) Encode() string {
	q := make(url.Values, len(v))
	for key, value := range v {
		q.Set(key, value)
	}
	return q.Encode()
}
