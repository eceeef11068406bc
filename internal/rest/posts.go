package rest

import (
	"net/http"
	"strconv"

	"github.com/dfryer1193/blogify/api"
	"github.com/dfryer1193/blogify/blog/application"
	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/dfryer1193/blogify/blog/render"
	"github.com/gin-gonic/gin"
)

func (h *handlers) ListPosts(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		badRequest(c, "limit must be an integer")
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		badRequest(c, "offset must be an integer")
		return
	}

	posts, err := h.deps.Posts.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err, "Failed to fetch blogs")
		return
	}

	out := make([]api.PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, api.PostSummary{
			Post:    toAPIPost(p),
			Excerpt: excerptOf(p),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) GetPost(c *gin.Context) {
	post, err := h.deps.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "Failed to fetch blog")
		return
	}

	c.JSON(http.StatusOK, api.PostDetail{
		Post: toAPIPost(post),
		HTML: h.deps.Pipeline.Render(post.Content, post.ContentType, post.Title),
	})
}

func (h *handlers) CreatePost(c *gin.Context) {
	var req api.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	post, err := h.deps.Posts.Create(c.Request.Context(), application.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		ContentType: req.ContentType,
		Author:      req.Author,
	})
	if err != nil {
		writeError(c, err, "Failed to create blog")
		return
	}

	c.JSON(http.StatusCreated, toAPIPost(post))
}

func (h *handlers) UpdatePost(c *gin.Context) {
	var req api.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	post, err := h.deps.Posts.Update(c.Request.Context(), c.Param("id"), application.UpdatePostInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		ContentType: req.ContentType,
		Author:      req.Author,
	})
	if err != nil {
		writeError(c, err, "Failed to update blog")
		return
	}

	c.JSON(http.StatusOK, toAPIPost(post))
}

func (h *handlers) DeletePost(c *gin.Context) {
	if err := h.deps.Posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "Failed to delete blog")
		return
	}

	c.JSON(http.StatusOK, api.Message{Message: "Blog deleted successfully"})
}

func (h *handlers) Render(c *gin.Context) {
	var req api.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	// Unknown types render as plain text, matching stored posts.
	ct, err := domain.ParseContentType(req.ContentType)
	if err != nil {
		ct = domain.ContentTypePlain
	}

	c.JSON(http.StatusOK, api.RenderResponse{HTML: h.deps.Pipeline.Render(req.Content, ct, req.Title)})
}

func toAPIPost(p *domain.Post) api.Post {
	return api.Post{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
		ContentType: string(p.ContentType),
		Author:      p.Author,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func excerptOf(p *domain.Post) string {
	return render.TextExcerpt(p.Content, p.ContentType, render.ExcerptLength)
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
