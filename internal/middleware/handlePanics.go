package middleware

import (
	"net/http"

	"github.com/dfryer1193/blogify/api"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandlePanics answers a recovered panic with a JSON 500 and logs it.
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		evt := log.Error().Str("method", c.Request.Method).Str("path", c.Request.URL.Path)
		if err, ok := recovered.(error); ok {
			evt = evt.Err(err)
		} else {
			evt = evt.Interface("panic", recovered)
		}
		evt.Msg("Recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, api.Message{Message: "Internal server error"})
	}
}
