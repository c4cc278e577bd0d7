// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"net/url"
	"quillbox-server/crypto"
	"quillbox-server/db"
	"quillbox-server/models"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const SessionCookieName = "qb_session"

const (
	// Remember-me sessions outlive the browser; ephemeral ones get a
	// short server-side horizon and a cookie that dies with the client.
	rememberSessionTTL  = 30 * 24 * time.Hour
	ephemeralSessionTTL = 12 * time.Hour
)

// CreateSession persists a session row for the user and returns it.
func CreateSession(user *models.User, remember bool) (*models.Session, error) {
	token, err := crypto.GenerateRandomString("st_", 32, "hex")
	if err != nil {
		return nil, err
	}

	ttl := ephemeralSessionTTL
	if remember {
		ttl = rememberSessionTTL
	}
	now := time.Now()
	expiresAt := now.Add(ttl)

	session := models.Session{
		Token:      token,
		Remember:   remember,
		LastUsedAt: &now,
		ExpiresAt:  &expiresAt,
		UserID:     user.ID,
	}
	if err := db.Conn.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// SetSessionCookie writes the session cookie. Remember-me sessions get a
// Max-Age so the cookie survives browser restarts; otherwise it is a
// plain session cookie.
func SetSessionCookie(c echo.Context, session *models.Session) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if session.Remember {
		cookie.MaxAge = int(rememberSessionTTL.Seconds())
	}
	c.SetCookie(cookie)
}

// ClearSession drops the session row and expires the cookie. Calling it
// without an active session is a no-op.
func ClearSession(c echo.Context) {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := db.Conn.Unscoped().Where("token = ?", cookie.Value).Delete(&models.Session{}).Error; err != nil {
			c.Logger().Error("Failed to delete session: ", err)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoadUser resolves the session cookie to a user on every request. An
// absent, unknown or expired session just leaves the request anonymous.
func LoadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		session := models.Session{}
		err = db.Conn.Where("token = ?", cookie.Value).First(&session).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.Logger().Error("Failed to load session: ", err)
			}
			return next(c)
		}
		if session.ExpiresAt == nil || session.ExpiresAt.Before(time.Now()) {
			return next(c)
		}

		user := models.User{}
		if err := db.Conn.Where("id = ?", session.UserID).First(&user).Error; err != nil {
			return next(c)
		}

		now := time.Now()
		session.LastUsedAt = &now
		if err := db.Conn.Save(&session).Error; err != nil {
			c.Logger().Error("Failed to update session LastUsedAt: ", err)
		}

		c.Set("session", &session)
		c.Set("user", &user)
		return next(c)
	}
}

// AuthenticatedUser returns the user resolved by LoadUser, or nil.
func AuthenticatedUser(c echo.Context) *models.User {
	if user, ok := c.Get("user").(*models.User); ok {
		return user
	}
	return nil
}

// RequireAuth gates a route behind authentication, bouncing anonymous
// visitors to the login page with the intended destination preserved.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if AuthenticatedUser(c) == nil {
			target := "/login?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusFound, target)
		}
		return next(c)
	}
}

// AnonymousOnly keeps pages like login and register away from users who
// already have a session.
func AnonymousOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if AuthenticatedUser(c) != nil {
			return c.Redirect(http.StatusFound, "/")
		}
		return next(c)
	}
}
