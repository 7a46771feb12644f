package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/formskema/middleware"
)

// DecodeForm decodes the request form under cfg, stores the Decoded value in
// the request context, or returns 400 with an Issues payload when decoding
// fails.
func DecodeForm(cfg middleware.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d, err := middleware.Decode(c.Request(), cfg)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorBody(err))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), d)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the Decoded form from echo.Context.
func GetDecoded(c echo.Context) (middleware.Decoded, bool) {
	return middleware.DecodedFromContext(c.Request().Context())
}
