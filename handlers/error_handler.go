// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"quillbox-server/middlewares"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders the error page instead of Echo's default JSON
// body. Internal error details never reach the page.
func HTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Something went wrong on our end. Please try again."

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok && code < http.StatusInternalServerError {
			message = msg
		}
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(code); err != nil {
			c.Logger().Error(err)
		}
		return
	}

	renderErr := c.Render(code, "error.html", echo.Map{
		"Title":   http.StatusText(code),
		"Code":    code,
		"Message": message,
		"User":    middlewares.AuthenticatedUser(c),
	})
	if renderErr != nil {
		c.Logger().Error(renderErr)
		if err := c.String(code, message); err != nil {
			c.Logger().Error(err)
		}
	}
}
