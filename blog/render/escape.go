package render

import "strings"

// htmlEscaper replaces the five HTML-significant characters in a single pass,
// so entities it produces are never escaped again.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML makes arbitrary text safe to place inside HTML markup.
// Newlines are left alone.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// PlainToHTML escapes s and turns every newline into a line break element.
func PlainToHTML(s string) string {
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br>")
}
