// Package api holds the JSON shapes of the REST API.
package api

import "time"

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ContentType string    `json:"contentType"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PostDetail is a single post with its rendered body.
type PostDetail struct {
	Post
	HTML string `json:"html"`
}

// PostSummary is a list entry with a plain-text preview.
type PostSummary struct {
	Post
	Excerpt string `json:"excerpt"`
}

type CreatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	Author      string `json:"author"`
}

// UpdatePostRequest is a partial update; absent fields are left unchanged.
type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	ContentType *string `json:"contentType"`
	Author      *string `json:"author"`
}

type RenderRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	Title       string `json:"title"`
}

type RenderResponse struct {
	HTML string `json:"html"`
}

type GenerateRequest struct {
	Title string `json:"title"`
}

type GeneratedDescription struct {
	Description string `json:"description"`
}

type GeneratedContent struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

type Health struct {
	Status       string          `json:"status"`
	Timestamp    time.Time       `json:"timestamp"`
	AIConfigured bool            `json:"aiConfigured"`
	Store        string          `json:"store"`
	Features     map[string]bool `json:"features"`
}

// Message is the body of errors and plain acknowledgements.
type Message struct {
	Message string `json:"message"`
}
