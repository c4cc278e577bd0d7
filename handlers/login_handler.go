// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"quillbox-server/crypto"
	"quillbox-server/db"
	"quillbox-server/forms"
	"quillbox-server/middlewares"
	"quillbox-server/stores"
	"quillbox-server/views"

	"github.com/labstack/echo/v4"
)

func LoginPageHandler(c echo.Context) error {
	return render(c, http.StatusOK, "login.html", echo.Map{
		"Title": "Login",
		"Form":  &forms.LoginForm{},
		"Next":  c.QueryParam("next"),
	})
}

func LoginHandler(c echo.Context) error {
	logger := c.Logger()

	form := forms.LoginForm{}
	if err := c.Bind(&form); err != nil {
		logger.Error("Invalid login form payload:", err)
		return echo.ErrBadRequest
	}

	next := c.FormValue("next")
	if next == "" {
		next = c.QueryParam("next")
	}

	errs := form.Validate()
	if errs.Any() {
		return render(c, http.StatusOK, "login.html", echo.Map{
			"Title":  "Login",
			"Form":   &form,
			"Errors": errs,
			"Next":   next,
		})
	}

	// One indistinguishable failure for unknown email and wrong password.
	user, err := stores.NewUserStore(db.Conn).FindByEmail(form.Email)
	if err != nil && !errors.Is(err, stores.ErrNotFound) {
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}
	if user == nil || crypto.NewCrypto().VerifyPassword(form.Password, user.Password) != nil {
		logger.Info("Login attempt failed")
		return render(c, http.StatusOK, "login.html", echo.Map{
			"Title": "Login",
			"Form":  &form,
			"Next":  next,
			"Flashes": []views.Flash{
				{Category: "danger", Message: "Login unsuccessful. Please check email and password."},
			},
		})
	}

	session, err := middlewares.CreateSession(user, form.Remember)
	if err != nil {
		logger.Errorf("Failed to create session: %v", err)
		return echo.ErrInternalServerError
	}
	middlewares.SetSessionCookie(c, session)

	logger.Info("User logged in successfully")
	views.AddFlash(c, "success", fmt.Sprintf("Welcome %s!", user.Username))
	return c.Redirect(http.StatusSeeOther, safeNextTarget(next))
}

// LogoutHandler clears the session; calling it while logged out is a
// harmless no-op.
func LogoutHandler(c echo.Context) error {
	middlewares.ClearSession(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
