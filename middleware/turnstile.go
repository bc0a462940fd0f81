package middleware

import (
	"net/http"

	"github.com/CorrelAid/function_relay/logger"
	"github.com/CorrelAid/function_relay/validators"
	"github.com/gin-gonic/gin"
)

// TurnstileField is the form field the Turnstile widget posts its token in.
const TurnstileField = "cf-turnstile-response"

func TurnstileMiddleware(cfg validators.TurnstileConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.PostForm(TurnstileField)
		if err := validators.ValidateTurnstileToken(c.Request.Context(), cfg, token, c.ClientIP()); err != nil {
			logger.Warn("turnstile rejected request", "path", c.FullPath(), "err", err)
			c.AbortWithStatusJSON(http.StatusForbidden, failed("Captcha verification failed."))
			return
		}
		c.Next()
	}
}
