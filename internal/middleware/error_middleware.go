package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/skillhub/internal/app/views"
)

// Recovery turns a panic into the error page instead of dropping the connection
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("panic", fmt.Sprint(recovered)).
			Msg("Recovered from panic")

		c.HTML(http.StatusInternalServerError, views.PageError, views.ErrorData{
			Base:    views.Base{Title: "Error"},
			Message: "Internal server error",
		})
		c.Abort()
	})
}
