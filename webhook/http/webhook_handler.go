package http

import (
	"context"
	"net/http"

	"github.com/dfryer1193/blogify/api"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v75/github"
	"github.com/rs/zerolog/log"
)

// PushHandler reacts to pushes on the synced repository.
type PushHandler interface {
	HandlePush(ctx context.Context, ref string) (bool, error)
}

type WebhookHandler struct {
	webhookSecret []byte
	pushes        PushHandler
}

func NewWebhookHandler(secret string, pushes PushHandler) *WebhookHandler {
	return &WebhookHandler{
		webhookSecret: []byte(secret),
		pushes:        pushes,
	}
}

func (h *WebhookHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/webhook/git", h.HandleGitWebhook)
}

func (h *WebhookHandler) HandleGitWebhook(c *gin.Context) {
	payload, err := github.ValidatePayload(c.Request, h.webhookSecret)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected webhook payload")
		c.JSON(http.StatusBadRequest, api.Message{Message: "Invalid payload"})
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(c.Request), payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Message{Message: "Invalid event"})
		return
	}

	switch evt := event.(type) {
	case *github.PushEvent:
		started, err := h.pushes.HandlePush(c.Request.Context(), evt.GetRef())
		if err != nil {
			log.Error().Err(err).Str("ref", evt.GetRef()).Msg("Error handling push event")
			c.JSON(http.StatusInternalServerError, api.Message{Message: "Error handling event"})
			return
		}
		log.Info().Str("ref", evt.GetRef()).Bool("syncing", started).Msg("Handled push event")
	default:
		log.Debug().Str("event", github.WebHookType(c.Request)).Msg("Ignoring webhook event")
	}

	c.Status(http.StatusNoContent)
}
