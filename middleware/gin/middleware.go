package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/formskema/middleware"
)

// DecodeForm decodes the request form under cfg, stores the Decoded value in
// the request context and aborts with 400 and an Issues payload when
// decoding fails.
func DecodeForm(cfg middleware.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := middleware.Decode(c.Request, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorBody(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), d))
		c.Next()
	}
}

// GetDecoded fetches the Decoded form from gin.Context.
func GetDecoded(c *gin.Context) (middleware.Decoded, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
