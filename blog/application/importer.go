package application

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/dfryer1193/blogify/blog/render"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultImportPattern selects the files an import considers.
const DefaultImportPattern = "**/*.md"

var frontMatterDelimiter = []byte("---")

// frontMatter is the optional YAML header of an imported file.
type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	ContentType string `yaml:"contentType"`
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Source   string
	Imported int
	Failed   int
}

// Importer copies Markdown files from a source into the post store.
type Importer struct {
	posts *PostService
}

func NewImporter(posts *PostService) *Importer {
	return &Importer{posts: posts}
}

// Import upserts every file of src matching pattern. A failing file is logged
// and counted; only a failure to list the source aborts the run.
func (i *Importer) Import(ctx context.Context, src domain.SourceRepository, pattern string) (ImportReport, error) {
	if pattern == "" {
		pattern = DefaultImportPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return ImportReport{}, fmt.Errorf("invalid import pattern %q", pattern)
	}

	report := ImportReport{Source: src.Name()}

	files, err := src.ListFiles(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list files in %s: %w", src.Name(), err)
	}

	for _, file := range files {
		if ok, _ := doublestar.Match(pattern, file); !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := i.importFile(ctx, src, file); err != nil {
			report.Failed++
			log.Error().Err(err).Str("source", src.Name()).Str("path", file).Msg("Failed to import post")
			continue
		}
		report.Imported++
	}

	log.Info().
		Str("source", report.Source).
		Int("imported", report.Imported).
		Int("failed", report.Failed).
		Msg("Import finished")

	return report, nil
}

func (i *Importer) importFile(ctx context.Context, src domain.SourceRepository, file string) error {
	raw, err := src.GetFileContents(ctx, file)
	if err != nil {
		return err
	}

	input, err := parsePostFile(file, raw)
	if err != nil {
		return err
	}

	_, err = i.posts.Import(ctx, ImportID(src.Name(), file), input)
	return err
}

// ImportID derives a stable post ID from the source and path, so re-imports overwrite.
func ImportID(source, file string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(source+"/"+file)).String()
}

// parsePostFile splits optional front matter from the body and fills in a title.
func parsePostFile(file string, raw []byte) (CreatePostInput, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return CreatePostInput{}, fmt.Errorf("front matter in %s: %w", file, err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = render.ExtractTitle(body)
	}
	if title == "" {
		title = strings.TrimSuffix(path.Base(file), path.Ext(file))
	}

	return CreatePostInput{
		Title:       title,
		Description: meta.Description,
		Content:     body,
		ContentType: meta.ContentType,
		Author:      meta.Author,
	}, nil
}

func splitFrontMatter(raw []byte) (frontMatter, string, error) {
	var meta frontMatter

	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	first, rest, found := cutLine(raw)
	if !found || !bytes.Equal(bytes.TrimSpace(first), frontMatterDelimiter) {
		return meta, string(raw), nil
	}

	var header []byte
	for len(rest) > 0 {
		line, remaining, _ := cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), frontMatterDelimiter) {
			if err := yaml.Unmarshal(header, &meta); err != nil {
				return meta, "", err
			}
			return meta, strings.TrimLeft(string(remaining), "\r\n"), nil
		}
		header = append(header, line...)
		header = append(header, '\n')
		rest = remaining
	}

	// No closing delimiter: the document has no front matter.
	return frontMatter{}, string(raw), nil
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}
