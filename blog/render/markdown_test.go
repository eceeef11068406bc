package render

import (
	"strings"
	"testing"
)

func TestMarkdownRenderer_Render(t *testing.T) {
	renderer := NewMarkdownRenderer()

	tests := []struct {
		name        string
		markdown    string
		contains    []string
		notContains []string
	}{
		{
			name:        "Heading levels",
			markdown:    "# One\n\n## Two\n\n### Three",
			contains:    []string{"<h1", ">One</h1>", "<h2", ">Two</h2>", "<h3", ">Three</h3>"},
			notContains: []string{"#"},
		},
		{
			name:     "Emphasis",
			markdown: "Some **bold** and *italic* text",
			contains: []string{"<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:     "Inline code is escaped",
			markdown: "Compare `a<b` here",
			contains: []string{"<code>a&lt;b</code>"},
		},
		{
			name:     "Link",
			markdown: "[Example](https://x.test)",
			contains: []string{`<a href="https://x.test">Example</a>`},
		},
		{
			name:     "Blockquote",
			markdown: "> quoted words",
			contains: []string{"<blockquote>", "quoted words"},
		},
		{
			name:     "Horizontal rule",
			markdown: "above\n\n---\n\nbelow",
			contains: []string{"<hr>", "<p>above</p>", "<p>below</p>"},
		},
		{
			name:     "Table",
			markdown: "| Col1 | Col2 |\n|------|------|\n| A    | B    |",
			contains: []string{"<table>", "<th>Col1</th>", "<td>A</td>"},
		},
		{
			name:     "Hard line breaks",
			markdown: "first line\nsecond line",
			contains: []string{"first line<br>", "second line"},
		},
		{
			name:        "Heading inside fenced code block",
			markdown:    "```\n# fake heading\n```",
			contains:    []string{"<code", "# fake heading"},
			notContains: []string{"<h1"},
		},
		{
			name:        "List marker inside fenced code block",
			markdown:    "```\n- not a list\n```",
			contains:    []string{"- not a list"},
			notContains: []string{"<ul>", "<li>"},
		},
		{
			name:        "Unterminated fenced code block",
			markdown:    "intro\n\n```\nstill code\n# not a heading",
			contains:    []string{"<p>intro</p>", "still code", "# not a heading"},
			notContains: []string{"<h1"},
		},
		{
			name:        "Raw HTML block is escaped",
			markdown:    "<script>alert(1)</script>",
			contains:    []string{"&lt;script&gt;alert(1)&lt;/script&gt;"},
			notContains: []string{"<script"},
		},
		{
			name:        "Inline raw HTML is escaped",
			markdown:    `hello <b onclick="steal()">there</b>`,
			contains:    []string{"&lt;b onclick=&quot;steal()&quot;&gt;there&lt;/b&gt;"},
			notContains: []string{"<b "},
		},
		{
			name:        "Dangerous link destination is dropped",
			markdown:    "[click](javascript:alert(1))",
			contains:    []string{">click</a>"},
			notContains: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := renderer.Render(tt.markdown)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("Render() = %q, want it to contain %q", result, want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(result, unwanted) {
					t.Errorf("Render() = %q, want it not to contain %q", result, unwanted)
				}
			}
		})
	}
}

func TestMarkdownRenderer_Render_Lists(t *testing.T) {
	renderer := NewMarkdownRenderer()

	tests := []struct {
		name      string
		markdown  string
		container string
	}{
		{
			name:      "Unordered list",
			markdown:  "- a\n- b",
			container: "<ul>",
		},
		{
			name:      "Ordered list",
			markdown:  "1. a\n2. b",
			container: "<ol>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := renderer.Render(tt.markdown)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if got := strings.Count(result, tt.container); got != 1 {
				t.Errorf("%s count = %d, want 1 in %q", tt.container, got, result)
			}
			if got := strings.Count(result, "<li>"); got != 2 {
				t.Errorf("<li> count = %d, want 2 in %q", got, result)
			}
		})
	}
}

func TestMarkdownRenderer_Render_Empty(t *testing.T) {
	result, err := NewMarkdownRenderer().Render("")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if result != "" {
		t.Errorf("Render(\"\") = %q, want empty", result)
	}
}

func TestMarkdownRenderer_Render_Deterministic(t *testing.T) {
	renderer := NewMarkdownRenderer()
	markdown := "# Title\n\nSome *text*\n\n```go\nfunc main() {}\n```\n\n- one\n- two"

	first, err := renderer.Render(markdown)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := renderer.Render(markdown)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if first != second {
		t.Errorf("Render() is not deterministic:\n%q\n%q", first, second)
	}
}

func TestMarkdownRenderer_Render_Highlighting(t *testing.T) {
	markdown := "```go\nfunc main() {}\n```"

	highlighted, err := NewMarkdownRenderer(WithHighlighting(true)).Render(markdown)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(highlighted, `class="chroma"`) {
		t.Errorf("expected chroma class on pre element, got %q", highlighted)
	}

	plain, err := NewMarkdownRenderer(WithHighlighting(false)).Render(markdown)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(plain, "chroma") {
		t.Errorf("expected no highlighting, got %q", plain)
	}
	if !strings.Contains(plain, "func main() {}") {
		t.Errorf("expected code text, got %q", plain)
	}
}

func TestMarkdownRenderer_Render_LinkBase(t *testing.T) {
	renderer := NewMarkdownRenderer(WithLinkBase("https://blog.test/"))

	result, err := renderer.Render("[next](./other-post.md) ![pic](img/photo.png) [ext](https://example.com) [top](#intro)")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	expected := []string{
		`href="https://blog.test/other-post"`,
		`src="https://blog.test/images/photo.png"`,
		`href="https://example.com"`,
		`href="#intro"`,
	}
	for _, want := range expected {
		if !strings.Contains(result, want) {
			t.Errorf("Render() = %q, want it to contain %q", result, want)
		}
	}
}

func TestIsRelativeLink(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "Absolute HTTP URL",
			url:      "http://example.com/page",
			expected: false,
		},
		{
			name:     "Absolute HTTPS URL",
			url:      "https://example.com/page",
			expected: false,
		},
		{
			name:     "Protocol-relative URL",
			url:      "//example.com/page",
			expected: false,
		},
		{
			name:     "Mailto link",
			url:      "mailto:user@example.com",
			expected: false,
		},
		{
			name:     "JavaScript URI",
			url:      "javascript:alert('test')",
			expected: false,
		},
		{
			name:     "Root-relative path",
			url:      "/posts/other",
			expected: true,
		},
		{
			name:     "Dot-relative path",
			url:      "./other.md",
			expected: true,
		},
		{
			name:     "Parent-relative path",
			url:      "../images/pic.png",
			expected: true,
		},
		{
			name:     "Bare file name",
			url:      "other.md",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isRelativeLink(tt.url)
			if result != tt.expected {
				t.Errorf("isRelativeLink(%q) = %v, want %v", tt.url, result, tt.expected)
			}
		})
	}
}
