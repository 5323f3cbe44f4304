package middlewares

import (
	"fmt"
	"net/http"

	"github.com/QPC-github/security-vulnogram/monitoring"
	"github.com/labstack/echo/v4"
)

// recovermiddleware turns a handler panic into a 500 and reports it to error
// tracking. http.ErrAbortHandler keeps its special meaning and is re-raised.
func recovermiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) (returnErr error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					monitoring.RecoverAndAlert("panic while handling request", err)
					returnErr = echo.NewHTTPError(500, http.StatusText(http.StatusInternalServerError)).WithInternal(err)
				}
			}()
			return next(ctx)
		}
	}
}
