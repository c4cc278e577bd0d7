// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"quillbox-server/db"
	"quillbox-server/stores"

	"github.com/labstack/echo/v4"
)

// HomeHandler renders the paginated listing of every post, newest first.
func HomeHandler(c echo.Context) error {
	page, err := stores.NewPostStore(db.Conn).ListAll(queryPage(c))
	if err != nil {
		c.Logger().Errorf("Failed to list posts: %v", err)
		return echo.ErrInternalServerError
	}
	return render(c, http.StatusOK, "home.html", echo.Map{
		"Title": "Home",
		"Page":  page,
	})
}

func AboutHandler(c echo.Context) error {
	return render(c, http.StatusOK, "about.html", echo.Map{
		"Title": "About",
	})
}

// UserPostsHandler renders one author's posts, paginated like the home
// listing.
func UserPostsHandler(c echo.Context) error {
	username := c.Param("username")

	profileUser, err := stores.NewUserStore(db.Conn).FindByUsername(username)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No user with that name.")
		}
		c.Logger().Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	page, err := stores.NewPostStore(db.Conn).ListByAuthor(profileUser.ID, queryPage(c))
	if err != nil {
		c.Logger().Errorf("Failed to list posts: %v", err)
		return echo.ErrInternalServerError
	}

	return render(c, http.StatusOK, "user_posts.html", echo.Map{
		"Title":       profileUser.Username,
		"ProfileUser": profileUser,
		"Page":        page,
	})
}
