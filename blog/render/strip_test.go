package render

import "testing"

func TestStripDuplicateTitle(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		title    string
		expected string
	}{
		{
			name:     "Matching heading is removed",
			fragment: "<h1 id=\"hello\">Hello</h1>\n<p>Body</p>\n",
			title:    "Hello",
			expected: "<p>Body</p>\n",
		},
		{
			name:     "Case-insensitive match",
			fragment: "<h1>HELLO world</h1><p>Body</p>",
			title:    "hello World",
			expected: "<p>Body</p>",
		},
		{
			name:     "Surrounding whitespace is ignored",
			fragment: "  \n<h1>  Hello  </h1>\n\n<p>Body</p>",
			title:    "  Hello ",
			expected: "<p>Body</p>",
		},
		{
			name:     "Different title keeps heading",
			fragment: "<h1>Hello</h1><p>Body</p>",
			title:    "Goodbye",
			expected: "<h1>Hello</h1><p>Body</p>",
		},
		{
			name:     "Level-2 heading is never removed",
			fragment: "<h2 id=\"hello\">Hello</h2>\n<p>Body</p>",
			title:    "Hello",
			expected: "<h2 id=\"hello\">Hello</h2>\n<p>Body</p>",
		},
		{
			name:     "Heading after other content is kept",
			fragment: "<p>Intro</p><h1>Hello</h1>",
			title:    "Hello",
			expected: "<p>Intro</p><h1>Hello</h1>",
		},
		{
			name:     "Only the first heading is removed",
			fragment: "<h1>Hello</h1><h1>Hello</h1>",
			title:    "Hello",
			expected: "<h1>Hello</h1>",
		},
		{
			name:     "Pattern metacharacters match literally",
			fragment: "<h1>(a+b)*c [x]?</h1><p>Body</p>",
			title:    "(a+b)*c [x]?",
			expected: "<p>Body</p>",
		},
		{
			name:     "Metacharacters do not act as wildcards",
			fragment: "<h1>ABC</h1><p>Body</p>",
			title:    "A.C",
			expected: "<h1>ABC</h1><p>Body</p>",
		},
		{
			name:     "Escaped entities compare as text",
			fragment: "<h1>Tom &amp; Jerry&#39;s</h1><p>Body</p>",
			title:    "Tom & Jerry's",
			expected: "<p>Body</p>",
		},
		{
			name:     "Inline markup inside heading",
			fragment: "<h1><strong>Bold</strong> Title</h1><p>Body</p>",
			title:    "bold title",
			expected: "<p>Body</p>",
		},
		{
			name:     "Empty title keeps heading",
			fragment: "<h1></h1><p>Body</p>",
			title:    "",
			expected: "<h1></h1><p>Body</p>",
		},
		{
			name:     "Empty fragment",
			fragment: "",
			title:    "Hello",
			expected: "",
		},
		{
			name:     "h1 prefix of another element is not a heading",
			fragment: "<h1x>Hello</h1x><p>Body</p>",
			title:    "Hello",
			expected: "<h1x>Hello</h1x><p>Body</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripDuplicateTitle(tt.fragment, tt.title)
			if result != tt.expected {
				t.Errorf("StripDuplicateTitle() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestStripDuplicateTitle_SecondPassIsNoOp(t *testing.T) {
	fragment := "<h1 id=\"a-b-c\">A.B*C</h1>\n<p>Body text</p>\n"

	once := StripDuplicateTitle(fragment, "A.B*C")
	twice := StripDuplicateTitle(once, "A.B*C")

	if once != "<p>Body text</p>\n" {
		t.Fatalf("first pass = %q", once)
	}
	if twice != once {
		t.Errorf("second pass = %q, want %q", twice, once)
	}
}

func TestStripDuplicateTitle_RepeatedHeadingIsStrippedAgain(t *testing.T) {
	pipeline := NewPipeline(PipelineConfig{})

	once := pipeline.Render("# Hi\n\n# Hi\n\nx", "markdown", "Hi")
	if once != "<h1 id=\"hi-1\">Hi</h1>\n<p>x</p>\n" {
		t.Fatalf("first pass = %q", once)
	}

	// A second matching h1 becomes the leading element, so another pass removes it too.
	if twice := StripDuplicateTitle(once, "Hi"); twice != "<p>x</p>\n" {
		t.Errorf("second pass = %q, want %q", twice, "<p>x</p>\n")
	}
}

func TestStripDuplicateTitle_MalformedFragment(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
	}{
		{name: "Unclosed heading", fragment: "<h1>Hello"},
		{name: "Comment first", fragment: "<!-- note --><h1>Hello</h1>"},
		{name: "Text first", fragment: "Hello<h1>Hello</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := StripDuplicateTitle(tt.fragment, "Hello"); result != tt.fragment {
				t.Errorf("StripDuplicateTitle() = %q, want unchanged", result)
			}
		})
	}
}
