// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"quillbox-server/forms"
	"quillbox-server/middlewares"
	"quillbox-server/views"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// render executes a page template with the ambient request state (current
// user, queued flashes) merged in.
func render(c echo.Context, status int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	data["User"] = middlewares.AuthenticatedUser(c)
	if _, ok := data["Flashes"]; !ok {
		data["Flashes"] = views.PopFlashes(c)
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.Errors{}
	}
	return c.Render(status, name, data)
}

func queryPage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// safeNextTarget accepts only internal relative paths for the post-login
// redirect; everything else falls back to the home listing.
func safeNextTarget(next string) string {
	if next == "" {
		return "/"
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	if strings.ContainsAny(next, "\\\r\n") || strings.Contains(next, "://") {
		return "/"
	}
	return next
}
