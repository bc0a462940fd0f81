package middleware

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/gin-gonic/gin"
)

// DefaultIPLookups is where the client address is looked for, in order.
var DefaultIPLookups = []string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"}

type Message struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}

func failed(body string) Message {
	return Message{Status: "Request Failed", Body: body}
}

// RateLimitMiddleware allows maxPerMinute requests per client address. Pass
// ipLookups to trust proxy headers differently; none means DefaultIPLookups.
func RateLimitMiddleware(maxPerMinute float64, ipLookups ...string) gin.HandlerFunc {
	if len(ipLookups) == 0 {
		ipLookups = DefaultIPLookups
	}
	lmt := tollbooth.NewLimiter(maxPerMinute/60.0, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Minute})
	lmt.SetIPLookups(ipLookups)

	return func(c *gin.Context) {
		if httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpError != nil {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, failed("The relay is at capacity, try again later."))
			return
		}
		c.Next()
	}
}
