package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/dfryer1193/blogify/blog/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// derivedDescriptionLength bounds descriptions generated from content.
const derivedDescriptionLength = 200

// CreatePostInput carries client-supplied fields for a new post.
// Blank optional fields take their defaults.
type CreatePostInput struct {
	Title       string
	Description string
	Content     string
	ContentType string
	Author      string
}

// UpdatePostInput carries a partial update. Nil fields keep their stored value.
type UpdatePostInput struct {
	Title       *string
	Description *string
	Content     *string
	ContentType *string
	Author      *string
}

// postFields is the normalized form every write is validated against.
type postFields struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"required,max=500"`
	Content     string `validate:"required,max=50000"`
	ContentType string `validate:"required,oneof=markdown html plain"`
	Author      string `validate:"required"`
}

type PostService struct {
	repo     domain.PostRepository
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

type PostServiceOption func(*PostService)

// WithClock replaces the time source used for createdAt and updatedAt.
func WithClock(now func() time.Time) PostServiceOption {
	return func(s *PostService) { s.now = now }
}

// WithIDGenerator replaces the generator for new post IDs.
func WithIDGenerator(newID func() string) PostServiceOption {
	return func(s *PostService) { s.newID = newID }
}

func NewPostService(repo domain.PostRepository, opts ...PostServiceOption) *PostService {
	s := &PostService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the input, assigns an ID and timestamps and stores the post.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*domain.Post, error) {
	fields := normalize(in)
	if err := s.check(fields); err != nil {
		return nil, err
	}

	now := s.now()
	post := fields.toPost(s.newID(), now)
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	log.Info().Str("postID", post.ID).Str("title", post.Title).Msg("Created post")
	return post, nil
}

// Import stores the post under a caller-chosen ID, keeping createdAt when it already exists.
func (s *PostService) Import(ctx context.Context, id string, in CreatePostInput) (*domain.Post, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidPost)
	}

	fields := normalize(in)
	if err := s.check(fields); err != nil {
		return nil, err
	}

	post := fields.toPost(id, s.now())
	if err := s.repo.UpsertPost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to import post %s: %w", id, err)
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// List returns a page of posts, newest first.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	return s.repo.ListPosts(ctx, limit, offset)
}

// Update applies the non-nil fields of in to the stored post and refreshes updatedAt.
func (s *PostService) Update(ctx context.Context, id string, in UpdatePostInput) (*domain.Post, error) {
	existing, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := CreatePostInput{
		Title:       valueOr(in.Title, existing.Title),
		Description: valueOr(in.Description, existing.Description),
		Content:     valueOr(in.Content, existing.Content),
		ContentType: valueOr(in.ContentType, string(existing.ContentType)),
		Author:      valueOr(in.Author, existing.Author),
	}

	fields := normalize(merged)
	if err := s.check(fields); err != nil {
		return nil, err
	}

	post := fields.toPost(id, existing.CreatedAt)
	post.UpdatedAt = s.now()
	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post %s: %w", id, err)
	}

	log.Info().Str("postID", id).Msg("Updated post")
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}

	log.Info().Str("postID", id).Msg("Deleted post")
	return nil
}

func (s *PostService) check(fields postFields) error {
	err := s.validate.Struct(fields)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidPost, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidPost, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// normalize trims input and fills defaults. Content is kept verbatim apart
// from the emptiness check so Markdown indentation survives.
func normalize(in CreatePostInput) postFields {
	fields := postFields{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Content:     in.Content,
		ContentType: strings.ToLower(strings.TrimSpace(in.ContentType)),
		Author:      strings.TrimSpace(in.Author),
	}

	if strings.TrimSpace(fields.Content) == "" {
		fields.Content = ""
	}
	if fields.ContentType == "" {
		fields.ContentType = string(domain.ContentTypeMarkdown)
	}
	if fields.Author == "" {
		fields.Author = domain.DefaultAuthor
	}
	if fields.Description == "" && fields.Content != "" {
		fields.Description = deriveDescription(fields.Content, domain.ContentType(fields.ContentType), fields.Title)
	}

	return fields
}

func deriveDescription(content string, ct domain.ContentType, title string) string {
	desc := render.TextExcerpt(content, ct, derivedDescriptionLength)
	if desc == "" {
		desc = title
	}
	return desc
}

func (f postFields) toPost(id string, createdAt time.Time) *domain.Post {
	return &domain.Post{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		Content:     f.Content,
		ContentType: domain.ContentType(f.ContentType),
		Author:      f.Author,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
