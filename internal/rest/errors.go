package rest

import (
	"errors"
	"net/http"

	"github.com/dfryer1193/blogify/api"
	"github.com/dfryer1193/blogify/blog/application"
	"github.com/dfryer1193/blogify/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged and answered with a generic message.
func writeError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, api.Message{Message: "Blog not found"})
	case errors.Is(err, application.ErrInvalidPost), errors.Is(err, application.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, api.Message{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, api.Message{Message: fallback})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, api.Message{Message: msg})
}
