package rest

import (
	"net/http"
	"time"

	"github.com/dfryer1193/blogify/api"
	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/gin-gonic/gin"
)

func (h *handlers) GenerateDescription(c *gin.Context) {
	var req api.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Title is required")
		return
	}

	description, err := h.deps.Generation.GenerateDescription(c.Request.Context(), req.Title)
	if err != nil {
		writeError(c, err, "Failed to generate description")
		return
	}

	c.JSON(http.StatusOK, api.GeneratedDescription{Description: description})
}

func (h *handlers) GenerateContent(c *gin.Context) {
	var req api.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Title is required")
		return
	}

	content, err := h.deps.Generation.GenerateContent(c.Request.Context(), req.Title)
	if err != nil {
		writeError(c, err, "Failed to generate content")
		return
	}

	c.JSON(http.StatusOK, api.GeneratedContent{
		Content:     content,
		ContentType: string(domain.ContentTypeMarkdown),
	})
}

func (h *handlers) Health(c *gin.Context) {
	features := h.deps.Features
	if features == nil {
		features = map[string]bool{}
	}

	c.JSON(http.StatusOK, api.Health{
		Status:       "OK",
		Timestamp:    time.Now().UTC(),
		AIConfigured: h.deps.Generation.Configured(),
		Store:        h.deps.Store,
		Features:     features,
	})
}
