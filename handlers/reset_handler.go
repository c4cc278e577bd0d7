// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"quillbox-server/commons"
	"quillbox-server/crypto"
	"quillbox-server/db"
	"quillbox-server/forms"
	"quillbox-server/models"
	"quillbox-server/notifications"
	"quillbox-server/stores"
	"quillbox-server/views"

	"github.com/labstack/echo/v4"
)

func signingSecret() string {
	return commons.GetEnv("SECRET_KEY", "default_very_secret_key")
}

func ResetRequestPageHandler(c echo.Context) error {
	return render(c, http.StatusOK, "reset_request.html", echo.Map{
		"Title": "Reset Password",
		"Form":  &forms.RequestResetForm{},
	})
}

func ResetRequestHandler(c echo.Context) error {
	logger := c.Logger()

	form := forms.RequestResetForm{}
	if err := c.Bind(&form); err != nil {
		logger.Error("Invalid reset request payload:", err)
		return echo.ErrBadRequest
	}

	if errs := form.Validate(); errs.Any() {
		return render(c, http.StatusOK, "reset_request.html", echo.Map{
			"Title":  "Reset Password",
			"Form":   &form,
			"Errors": errs,
		})
	}

	user, err := stores.NewUserStore(db.Conn).FindByEmail(form.Email)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			// Same outcome as a known address; no account enumeration.
			views.AddFlash(c, "info", "An email has been sent with instructions to reset your password.")
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	if err := sendResetEmail(user); err != nil {
		logger.Errorf("Failed to send reset email: %v", err)
		return render(c, http.StatusOK, "reset_request.html", echo.Map{
			"Title": "Reset Password",
			"Form":  &form,
			"Flashes": []views.Flash{
				{Category: "danger", Message: "We could not send the reset email. Please try again."},
			},
		})
	}

	logger.Info("Reset email sent successfully")
	views.AddFlash(c, "info", "An email has been sent with instructions to reset your password.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func sendResetEmail(user *models.User) error {
	token, err := crypto.IssueResetToken(user.ID, signingSecret())
	if err != nil {
		return err
	}

	baseURL := commons.GetEnv("BASE_URL", "http://localhost:8080")
	return notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:       user.Email,
		ToName:   &user.Username,
		Subject:  "Quillbox Password Reset",
		Template: "reset_password",
		Variables: map[string]any{
			"username":           user.Username,
			"product_name":       "Quillbox",
			"reset_link":         baseURL + "/reset_password/" + token,
			"expiration_minutes": "30",
		},
	})
}

func ResetTokenPageHandler(c echo.Context) error {
	token := c.Param("token")

	if _, err := verifyResetUser(c, token); err != nil {
		views.AddFlash(c, "warning", "That is an invalid or expired token.")
		return c.Redirect(http.StatusSeeOther, "/reset_password")
	}

	return render(c, http.StatusOK, "reset_token.html", echo.Map{
		"Title": "Reset Password",
		"Form":  &forms.ResetPasswordForm{},
		"Token": token,
	})
}

func ResetTokenHandler(c echo.Context) error {
	logger := c.Logger()
	token := c.Param("token")

	user, err := verifyResetUser(c, token)
	if err != nil {
		views.AddFlash(c, "warning", "That is an invalid or expired token.")
		return c.Redirect(http.StatusSeeOther, "/reset_password")
	}

	form := forms.ResetPasswordForm{}
	if err := c.Bind(&form); err != nil {
		logger.Error("Invalid reset form payload:", err)
		return echo.ErrBadRequest
	}

	if errs := form.Validate(); errs.Any() {
		return render(c, http.StatusOK, "reset_token.html", echo.Map{
			"Title":  "Reset Password",
			"Form":   &form,
			"Errors": errs,
			"Token":  token,
		})
	}

	if err := stores.NewUserStore(db.Conn).SetPassword(user, form.Password); err != nil {
		logger.Errorf("Failed to set password: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Password reset successfully")
	views.AddFlash(c, "success", "You have successfully updated your password!")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// verifyResetUser checks the token and that the embedded user still
// exists.
func verifyResetUser(c echo.Context, token string) (*models.User, error) {
	userID, err := crypto.VerifyResetToken(token, signingSecret())
	if err != nil {
		c.Logger().Infof("Reset token rejected: %v", err)
		return nil, err
	}
	user, err := stores.NewUserStore(db.Conn).FindByID(userID)
	if err != nil {
		c.Logger().Info("Reset token user no longer exists")
		return nil, crypto.ErrTokenInvalid
	}
	return user, nil
}
