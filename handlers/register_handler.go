// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"quillbox-server/db"
	"quillbox-server/forms"
	"quillbox-server/stores"
	"quillbox-server/views"

	"github.com/labstack/echo/v4"
)

func RegisterPageHandler(c echo.Context) error {
	return render(c, http.StatusOK, "register.html", echo.Map{
		"Title": "Register",
		"Form":  &forms.RegisterForm{},
	})
}

func RegisterHandler(c echo.Context) error {
	logger := c.Logger()

	form := forms.RegisterForm{}
	if err := c.Bind(&form); err != nil {
		logger.Error("Invalid register form payload:", err)
		return echo.ErrBadRequest
	}

	errs := form.Validate()
	if !errs.Any() {
		_, err := stores.NewUserStore(db.Conn).Register(form.Username, form.Email, form.Password)
		switch {
		case err == nil:
		case errors.Is(err, stores.ErrDuplicateUsername):
			errs["username"] = "That username already exists. Please choose another."
		case errors.Is(err, stores.ErrDuplicateEmail):
			errs["email"] = "That email already exists. Please choose another."
		default:
			logger.Errorf("Failed to register user: %v", err)
			return echo.ErrInternalServerError
		}
	}

	if errs.Any() {
		return render(c, http.StatusOK, "register.html", echo.Map{
			"Title":  "Register",
			"Form":   &form,
			"Errors": errs,
		})
	}

	logger.Info("User registered successfully")
	views.AddFlash(c, "success", fmt.Sprintf("Account created for %s!", form.Username))
	return c.Redirect(http.StatusSeeOther, "/login")
}
