package assemble

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// escape percent-encodes free text for a query value. Spaces become %20
// rather than '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// escapeMarkerText protects commas with a backslash before escaping.
func escapeMarkerText(s string) string {
	return escape(strings.ReplaceAll(s, ",", `\,`))
}

const iconSafe = "-_.~!*'(),;:@/?|=%$[]"

// escapeIconData encodes only bytes that cannot appear in a query value.
// Icon data arrives already escaped by its own '@' grammar and may carry
// percent sequences that must reach the service untouched.
func escapeIconData(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || strings.IndexByte(iconSafe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func num(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinLabels(labels []string) (string, bool) {
	parts := make([]string, len(labels))
	nonEmpty := false
	for i, l := range labels {
		parts[i] = escape(l)
		if l != "" {
			nonEmpty = true
		}
	}
	return strings.Join(parts, "|"), nonEmpty
}
