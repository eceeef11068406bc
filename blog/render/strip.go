package render

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// StripDuplicateTitle removes a leading level-1 heading whose text equals title,
// ignoring case and surrounding whitespace. Only the first element of the fragment
// is considered. The title is compared as text, never as a pattern.
func StripDuplicateTitle(fragment, title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return fragment
	}

	end, heading, ok := leadingHeading(fragment)
	if !ok || !strings.EqualFold(heading, title) {
		return fragment
	}

	return strings.TrimLeftFunc(fragment[end:], unicode.IsSpace)
}

// leadingHeading tokenizes the start of fragment. When its first element is an h1 it
// returns the byte offset just past the closing tag and the text a reader sees.
func leadingHeading(fragment string) (int, string, bool) {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var (
		offset    int
		inHeading bool
		text      strings.Builder
	)
	for {
		tt := z.Next()
		raw := z.Raw()
		offset += len(raw)

		switch tt {
		case html.ErrorToken:
			return 0, "", false
		case html.TextToken:
			if !inHeading {
				if strings.TrimSpace(string(raw)) != "" {
					return 0, "", false
				}
				continue
			}
			text.Write(z.Text())
		case html.StartTagToken:
			if !inHeading {
				name, _ := z.TagName()
				if string(name) != "h1" {
					return 0, "", false
				}
				inHeading = true
			}
		case html.EndTagToken:
			if !inHeading {
				return 0, "", false
			}
			if name, _ := z.TagName(); string(name) == "h1" {
				return offset, strings.TrimSpace(text.String()), true
			}
		default:
			if !inHeading {
				return 0, "", false
			}
		}
	}
}
