// SPDX-License-Identifier: GPL-3.0-only

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"quillbox-server/db"
	"quillbox-server/handlers"
	"quillbox-server/middlewares"
	"quillbox-server/models"
	"quillbox-server/routes"
	"quillbox-server/stores"
	"quillbox-server/views"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires a full application against an in-memory database. The
// working directory moves to the repository root so the page and email
// templates resolve exactly as they do in production.
func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(".."); err != nil {
		t.Fatalf("failed to chdir to repository root: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})

	t.Setenv("ARGON2_MEMORY", "8192")
	t.Setenv("ARGON2_TIME", "1")
	t.Setenv("MOCK_EMAIL_NOTIFICATIONS", "true")
	t.Setenv("SECRET_KEY", "handler_test_secret")
	t.Setenv("LOG_LEVEL", "OFF")

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.Conn = conn

	e := echo.New()
	e.HideBanner = true
	renderer, err := views.NewRenderer("templates/*.html")
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	e.Renderer = renderer
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	e.Use(middlewares.LoadUser)
	routes.RegisterRoutes(e)
	return e
}

func registerUser(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	user, err := stores.NewUserStore(db.Conn).Register(username, email, password)
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return user
}

// sessionCookie logs the user in at the session layer and returns the
// cookie a browser would carry afterwards.
func sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	session, err := middlewares.CreateSession(user, false)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return &http.Cookie{Name: middlewares.SessionCookieName, Value: session.Token}
}

func doGET(e *echo.Echo, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doPOST(e *echo.Echo, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d\nbody: %s", want, rec.Code, rec.Body.String())
	}
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, status int, location string) {
	t.Helper()
	assertStatus(t, rec, status)
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
