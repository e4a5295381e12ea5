package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders the generic error pages for anything that
// escapes the handlers: unknown routes get the 404 page, everything else
// the 500 page. Detail stays in the server log.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	page := "error500.html"
	if code == http.StatusNotFound {
		page = "error404.html"
	} else {
		code = http.StatusInternalServerError
		c.Logger().Error(err)
	}
	if rerr := c.Render(code, page, echo.Map{}); rerr != nil {
		c.Logger().Error(rerr)
	}
}
