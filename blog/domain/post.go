package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxContentLength     = 50000

	DefaultAuthor = "Anonymous"
)

// ErrPostNotFound is returned by repositories when no post has the requested ID.
var ErrPostNotFound = errors.New("post not found")

// ContentType determines how a post's Content is interpreted before display.
type ContentType string

const (
	ContentTypeMarkdown ContentType = "markdown"
	ContentTypeHTML     ContentType = "html"
	ContentTypePlain    ContentType = "plain"
)

// ParseContentType maps a stored or submitted tag onto a ContentType.
// An empty tag means markdown.
func ParseContentType(s string) (ContentType, error) {
	switch ct := ContentType(strings.ToLower(strings.TrimSpace(s))); ct {
	case "":
		return ContentTypeMarkdown, nil
	case ContentTypeMarkdown, ContentTypeHTML, ContentTypePlain:
		return ct, nil
	default:
		return "", fmt.Errorf("unknown content type %q", s)
	}
}

// Post represents a blog post.
// Content is stored as authored and rendered on read according to ContentType.
type Post struct {
	ID          string
	Title       string
	Description string
	Content     string
	ContentType ContentType
	Author      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PostRepository interface {
	CreatePost(ctx context.Context, p *Post) error
	GetPost(ctx context.Context, id string) (*Post, error)
	// ListPosts returns posts ordered by creation time, newest first.
	ListPosts(ctx context.Context, limit int, offset int) ([]*Post, error)
	// UpdatePost overwrites every mutable field of an existing post.
	UpdatePost(ctx context.Context, p *Post) error
	// UpsertPost inserts the post or overwrites it, keeping the stored CreatedAt.
	UpsertPost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id string) error
}
