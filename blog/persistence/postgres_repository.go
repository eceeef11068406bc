package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ domain.PostRepository = (*PostgresPostRepository)(nil)

// PostgresPostRepository implements domain.PostRepository on a pgx pool
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

const pgPostColumns = `id, title, description, content, content_type, author, created_at, updated_at`

func (r *PostgresPostRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	if err := checkPost(p); err != nil {
		return err
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts (`+pgPostColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Title, p.Description, p.Content, string(p.ContentType), p.Author,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PostgresPostRepository) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	if id == "" {
		return nil, fmt.Errorf("post ID cannot be empty")
	}

	var row pgPostRow
	err := r.pool.QueryRow(ctx, `SELECT `+pgPostColumns+` FROM posts WHERE id = $1`, id).Scan(row.dest()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PostgresPostRepository) ListPosts(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := r.pool.Query(ctx,
		`SELECT `+pgPostColumns+` FROM posts ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var row pgPostRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// UpdatePost clamps updated_at to the stored created_at inside a single statement.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, p *domain.Post) error {
	if err := checkPost(p); err != nil {
		return err
	}

	err := r.pool.QueryRow(ctx, `
		UPDATE posts
		SET title = $1, description = $2, content = $3, content_type = $4, author = $5,
			updated_at = GREATEST($6, created_at)
		WHERE id = $7
		RETURNING created_at, updated_at`,
		p.Title, p.Description, p.Content, string(p.ContentType), p.Author, p.UpdatedAt.UTC(), p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, p.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (r *PostgresPostRepository) UpsertPost(ctx context.Context, p *domain.Post) error {
	if err := checkPost(p); err != nil {
		return err
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO posts (`+pgPostColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			content = EXCLUDED.content,
			content_type = EXCLUDED.content_type,
			author = EXCLUDED.author,
			updated_at = GREATEST(EXCLUDED.updated_at, posts.created_at)`,
		p.ID, p.Title, p.Description, p.Content, string(p.ContentType), p.Author,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert post: %w", err)
	}
	return nil
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, id)
	}
	return nil
}

type pgPostRow struct {
	ID          string
	Title       string
	Description string
	Content     string
	ContentType string
	Author      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (pr *pgPostRow) dest() []any {
	return []any{&pr.ID, &pr.Title, &pr.Description, &pr.Content, &pr.ContentType, &pr.Author, &pr.CreatedAt, &pr.UpdatedAt}
}

func (pr *pgPostRow) toDomain() *domain.Post {
	return &domain.Post{
		ID:          pr.ID,
		Title:       pr.Title,
		Description: pr.Description,
		Content:     pr.Content,
		ContentType: contentTypeOrDefault(pr.ContentType),
		Author:      pr.Author,
		CreatedAt:   pr.CreatedAt,
		UpdatedAt:   pr.UpdatedAt,
	}
}
