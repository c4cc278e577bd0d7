// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"quillbox-server/avatars"
	"quillbox-server/db"
	"quillbox-server/forms"
	"quillbox-server/middlewares"
	"quillbox-server/stores"
	"quillbox-server/views"

	"github.com/labstack/echo/v4"
)

func AccountPageHandler(c echo.Context) error {
	user := middlewares.AuthenticatedUser(c)
	return render(c, http.StatusOK, "account.html", echo.Map{
		"Title": "Account",
		"Form": &forms.UpdateAccountForm{
			Username: user.Username,
			Email:    user.Email,
		},
		"ImageFile": user.ImageFile,
	})
}

func AccountHandler(c echo.Context) error {
	logger := c.Logger()
	user := middlewares.AuthenticatedUser(c)

	form := forms.UpdateAccountForm{}
	if err := c.Bind(&form); err != nil {
		logger.Error("Invalid account form payload:", err)
		return echo.ErrBadRequest
	}

	errs := form.Validate()

	// A new avatar is stored first so a decode failure surfaces as a
	// field error alongside the others.
	newImage := ""
	if file, err := c.FormFile("picture"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			logger.Errorf("Failed to open uploaded avatar: %v", err)
			return echo.ErrInternalServerError
		}
		defer src.Close()

		newImage, err = avatars.Save(src, file.Filename, avatars.Dir)
		if err != nil {
			if errors.Is(err, avatars.ErrUnsupportedFormat) {
				errs["picture"] = "Profile pictures must be JPEG or PNG images."
			} else {
				logger.Errorf("Failed to store avatar: %v", err)
				return echo.ErrInternalServerError
			}
		}
	}

	users := stores.NewUserStore(db.Conn)
	if !errs.Any() {
		err := users.UpdateProfile(user, form.Username, form.Email)
		switch {
		case err == nil:
		case errors.Is(err, stores.ErrDuplicateUsername):
			errs["username"] = "That username already exists. Please choose another."
		case errors.Is(err, stores.ErrDuplicateEmail):
			errs["email"] = "That email already exists. Please choose another."
		default:
			avatars.Remove(newImage, avatars.Dir)
			logger.Errorf("Failed to update profile: %v", err)
			return echo.ErrInternalServerError
		}
	}

	if errs.Any() {
		avatars.Remove(newImage, avatars.Dir)
		return render(c, http.StatusOK, "account.html", echo.Map{
			"Title":     "Account",
			"Form":      &form,
			"Errors":    errs,
			"ImageFile": user.ImageFile,
		})
	}

	if newImage != "" {
		oldImage := user.ImageFile
		if err := users.SetAvatar(user, newImage); err != nil {
			logger.Errorf("Failed to persist avatar filename: %v", err)
			avatars.Remove(newImage, avatars.Dir)
			return echo.ErrInternalServerError
		}
		avatars.Remove(oldImage, avatars.Dir)
	}

	if form.NewPassword != "" {
		if err := users.SetPassword(user, form.NewPassword); err != nil {
			logger.Errorf("Failed to change password: %v", err)
			return echo.ErrInternalServerError
		}
	}

	logger.Info("Account updated successfully")
	views.AddFlash(c, "success", "You have successfully updated your account!")
	return c.Redirect(http.StatusSeeOther, "/account")
}
