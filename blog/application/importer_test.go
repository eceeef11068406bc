package application

import (
	"context"
	"errors"
	"testing"

	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePostFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		raw      string
		expected CreatePostInput
	}{
		{
			name: "front matter overrides heading",
			file: "posts/hello.md",
			raw:  "---\ntitle: From Front Matter\ndescription: Short\nauthor: Ann\ncontentType: markdown\n---\n# Heading Title\n\nBody",
			expected: CreatePostInput{
				Title:       "From Front Matter",
				Description: "Short",
				Author:      "Ann",
				ContentType: "markdown",
				Content:     "# Heading Title\n\nBody",
			},
		},
		{
			name:     "title from heading",
			file:     "posts/hello.md",
			raw:      "# Heading Title\n\nBody",
			expected: CreatePostInput{Title: "Heading Title", Content: "# Heading Title\n\nBody"},
		},
		{
			name:     "title from file name",
			file:     "posts/my-post.md",
			raw:      "Just text",
			expected: CreatePostInput{Title: "my-post", Content: "Just text"},
		},
		{
			name:     "windows line endings",
			file:     "a.md",
			raw:      "---\r\ntitle: CRLF\r\n---\r\nBody",
			expected: CreatePostInput{Title: "CRLF", Content: "Body"},
		},
		{
			name:     "unclosed front matter is body",
			file:     "a.md",
			raw:      "---\ntitle: nope\n",
			expected: CreatePostInput{Title: "a", Content: "---\ntitle: nope\n"},
		},
		{
			name:     "rule later in document is not front matter",
			file:     "a.md",
			raw:      "# T\n\n---\n\nafter",
			expected: CreatePostInput{Title: "T", Content: "# T\n\n---\n\nafter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePostFile(tt.file, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParsePostFile_BadFrontMatter(t *testing.T) {
	_, err := parsePostFile("a.md", []byte("---\ntitle: [unclosed\n---\nbody"))
	assert.Error(t, err)
}

func TestImporter_Import(t *testing.T) {
	svc, repo, _ := newTestService(t)
	src := &fakeSource{
		name: "test",
		files: map[string]string{
			"posts/one.md":      "# One\n\nFirst post",
			"posts/deep/two.md": "---\ntitle: Two\n---\nSecond post",
			"posts/empty.md":    "",
			"README.txt":        "not markdown",
		},
	}

	report, err := NewImporter(svc).Import(context.Background(), src, "")
	require.NoError(t, err)
	assert.Equal(t, ImportReport{Source: "test", Imported: 2, Failed: 1}, report)
	assert.Equal(t, 2, repo.count())

	post, err := repo.GetPost(context.Background(), ImportID("test", "posts/deep/two.md"))
	require.NoError(t, err)
	assert.Equal(t, "Two", post.Title)
	assert.Equal(t, "Second post", post.Description)
	assert.Equal(t, domain.ContentTypeMarkdown, post.ContentType)

	// A second run overwrites instead of duplicating.
	_, err = NewImporter(svc).Import(context.Background(), src, "")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.count())
}

func TestImporter_Import_Pattern(t *testing.T) {
	svc, repo, _ := newTestService(t)
	src := &fakeSource{
		name: "test",
		files: map[string]string{
			"posts/one.md":  "# One\n\nbody",
			"drafts/two.md": "# Two\n\nbody",
		},
	}

	report, err := NewImporter(svc).Import(context.Background(), src, "posts/*.md")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, repo.count())

	_, err = NewImporter(svc).Import(context.Background(), src, "posts/[")
	assert.Error(t, err)
}

func TestImporter_Import_ListError(t *testing.T) {
	svc, _, _ := newTestService(t)
	src := &fakeSource{name: "test", listErr: errors.New("offline")}

	_, err := NewImporter(svc).Import(context.Background(), src, "")
	assert.ErrorContains(t, err, "offline")
}

func TestImportID(t *testing.T) {
	assert.Equal(t, ImportID("src", "a.md"), ImportID("src", "a.md"))
	assert.NotEqual(t, ImportID("src", "a.md"), ImportID("src", "b.md"))
	assert.NotEqual(t, ImportID("src", "a.md"), ImportID("other", "a.md"))
}
