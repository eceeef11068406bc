package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/dfryer1193/blogify/shared/db"
)

var _ domain.PostRepository = (*SQLitePostRepository)(nil)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// SQLitePostRepository implements domain.PostRepository using SQL database (SQLite)
type SQLitePostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLitePostRepository from a standard sql.DB
func NewPostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db: db,
	}
}

const createPostQuery = `
	INSERT INTO posts (id, title, description, content, content_type, author, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// CreatePost inserts a new post. The ID must not exist yet.
func (r *SQLitePostRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	if err := checkPost(p); err != nil {
		return err
	}

	_, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, createPostQuery,
		p.ID,
		p.Title,
		p.Description,
		p.Content,
		string(p.ContentType),
		p.Author,
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

const getPostQuery = `
	SELECT id, title, description, content, content_type, author, created_at, updated_at
	FROM posts
	WHERE id = ?
`

// GetPost retrieves a single post by ID
func (r *SQLitePostRepository) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	if id == "" {
		return nil, fmt.Errorf("post ID cannot be empty")
	}

	var row postRow
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getPostQuery, id).Scan(row.dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return row.toDomain(), nil
}

const listPostsQuery = `
	SELECT id, title, description, content, content_type, author, created_at, updated_at
	FROM posts
	ORDER BY created_at DESC, id DESC
	LIMIT ? OFFSET ?
`

// ListPosts retrieves posts ordered by creation date descending
func (r *SQLitePostRepository) ListPosts(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := db.GetExecutor(ctx, r.db).QueryContext(ctx, listPostsQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var row postRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, row.toDomain())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

const getCreatedAtQuery = `SELECT created_at FROM posts WHERE id = ?`

const updatePostQuery = `
	UPDATE posts
	SET title = ?, description = ?, content = ?, content_type = ?, author = ?, updated_at = ?
	WHERE id = ?
`

// UpdatePost overwrites the mutable fields of an existing post.
// The stored created_at is authoritative: p.CreatedAt is refreshed from it and
// updated_at is never written earlier than it.
func (r *SQLitePostRepository) UpdatePost(ctx context.Context, p *domain.Post) error {
	if err := checkPost(p); err != nil {
		return err
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		var createdAt sql.NullTime
		err := executor.QueryRowContext(txCtx, getCreatedAtQuery, p.ID).Scan(&createdAt)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrPostNotFound, p.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to load post %s: %w", p.ID, err)
		}

		if createdAt.Valid {
			p.CreatedAt = createdAt.Time
			if p.UpdatedAt.Before(p.CreatedAt) {
				p.UpdatedAt = p.CreatedAt
			}
		}

		_, err = executor.ExecContext(txCtx, updatePostQuery,
			p.Title,
			p.Description,
			p.Content,
			string(p.ContentType),
			p.Author,
			p.UpdatedAt.UTC(),
			p.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}

		return nil
	})
}

const upsertPostQuery = `
	INSERT INTO posts (id, title, description, content, content_type, author, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		content = excluded.content,
		content_type = excluded.content_type,
		author = excluded.author,
		updated_at = excluded.updated_at,
		created_at = COALESCE(posts.created_at, excluded.created_at)
`

// UpsertPost inserts or overwrites a post, keeping the created_at of an existing row
func (r *SQLitePostRepository) UpsertPost(ctx context.Context, p *domain.Post) error {
	if err := checkPost(p); err != nil {
		return err
	}

	_, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, upsertPostQuery,
		p.ID,
		p.Title,
		p.Description,
		p.Content,
		string(p.ContentType),
		p.Author,
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert post: %w", err)
	}

	return nil
}

const deletePostQuery = `DELETE FROM posts WHERE id = ?`

// DeletePost permanently removes a post
func (r *SQLitePostRepository) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	res, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, deletePostQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read deleted row count: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, id)
	}

	return nil
}

// postRow is a private struct used to scan database rows
// It uses sql.NullTime to handle nullable timestamp fields
// and provides a method to convert to the domain.Post model
type postRow struct {
	ID          string       `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Content     string       `db:"content"`
	ContentType string       `db:"content_type"`
	Author      string       `db:"author"`
	CreatedAt   sql.NullTime `db:"created_at"`
	UpdatedAt   sql.NullTime `db:"updated_at"`
}

// dest returns scan targets in the column order of the SELECT queries above
func (pr *postRow) dest() []any {
	return []any{
		&pr.ID,
		&pr.Title,
		&pr.Description,
		&pr.Content,
		&pr.ContentType,
		&pr.Author,
		&pr.CreatedAt,
		&pr.UpdatedAt,
	}
}

// toDomain converts a postRow to a domain.Post, handling nullable times
func (pr *postRow) toDomain() *domain.Post {
	post := &domain.Post{
		ID:          pr.ID,
		Title:       pr.Title,
		Description: pr.Description,
		Content:     pr.Content,
		ContentType: contentTypeOrDefault(pr.ContentType),
		Author:      pr.Author,
	}

	if pr.CreatedAt.Valid {
		post.CreatedAt = pr.CreatedAt.Time
	}
	if pr.UpdatedAt.Valid {
		post.UpdatedAt = pr.UpdatedAt.Time
	}

	return post
}
