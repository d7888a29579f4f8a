package conv

import (
	"regexp"
	"strings"

	"github.com/inbucket/html2text"
)

var htmlTagRe = regexp.MustCompile(`(?i)</?\s*(p|br|div|span|a|b|i|em|strong|ul|ol|li|h[1-6]|pre|code|table|tr|td|th|img|html|body)\b[^>]*>`)

// LooksLikeHTML reports whether s contains common HTML markup.
func LooksLikeHTML(s string) bool {
	return htmlTagRe.MatchString(s)
}

// HTMLToText renders HTML markup as plain text. Input without markup is
// returned unchanged.
func HTMLToText(s string) string {
	if !LooksLikeHTML(s) {
		return s
	}
	text, err := html2text.FromString(s, html2text.Options{
		OmitLinks:    false,
		PrettyTables: true,
	})
	if err != nil {
		return s
	}
	return strings.TrimSpace(text)
}
