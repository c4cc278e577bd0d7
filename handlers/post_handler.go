// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"quillbox-server/db"
	"quillbox-server/forms"
	"quillbox-server/middlewares"
	"quillbox-server/models"
	"quillbox-server/stores"
	"quillbox-server/views"
	"strconv"

	"github.com/labstack/echo/v4"
)

func NewPostPageHandler(c echo.Context) error {
	return render(c, http.StatusOK, "create_post.html", echo.Map{
		"Title":  "New Post",
		"Legend": "New Post",
		"Form":   &forms.PostForm{},
		"Action": "/post/new",
	})
}

func CreatePostHandler(c echo.Context) error {
	logger := c.Logger()
	user := middlewares.AuthenticatedUser(c)

	form := forms.PostForm{}
	if err := c.Bind(&form); err != nil {
		logger.Error("Invalid post form payload:", err)
		return echo.ErrBadRequest
	}

	if errs := form.Validate(); errs.Any() {
		return render(c, http.StatusOK, "create_post.html", echo.Map{
			"Title":  "New Post",
			"Legend": "New Post",
			"Form":   &form,
			"Errors": errs,
			"Action": "/post/new",
		})
	}

	if _, err := stores.NewPostStore(db.Conn).Create(user.ID, form.Title, form.Content); err != nil {
		logger.Errorf("Failed to create post: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Post created successfully")
	views.AddFlash(c, "success", "New post uploaded successfully!")
	return c.Redirect(http.StatusSeeOther, "/")
}

func PostPageHandler(c echo.Context) error {
	post, err := loadPost(c)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "post.html", echo.Map{
		"Title": post.Title,
		"Post":  post,
	})
}

func UpdatePostPageHandler(c echo.Context) error {
	post, err := postForMutation(c)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "create_post.html", echo.Map{
		"Title":  "Update Post",
		"Legend": "Update Post",
		"Form":   &forms.PostForm{Title: post.Title, Content: post.Content},
		"Action": fmt.Sprintf("/post/%d/update", post.ID),
	})
}

func UpdatePostHandler(c echo.Context) error {
	logger := c.Logger()

	post, err := postForMutation(c)
	if err != nil {
		return err
	}

	form := forms.PostForm{}
	if err := c.Bind(&form); err != nil {
		logger.Error("Invalid post form payload:", err)
		return echo.ErrBadRequest
	}

	if errs := form.Validate(); errs.Any() {
		return render(c, http.StatusOK, "create_post.html", echo.Map{
			"Title":  "Update Post",
			"Legend": "Update Post",
			"Form":   &form,
			"Errors": errs,
			"Action": fmt.Sprintf("/post/%d/update", post.ID),
		})
	}

	if err := stores.NewPostStore(db.Conn).Update(post, form.Title, form.Content); err != nil {
		logger.Errorf("Failed to update post: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Post updated successfully")
	views.AddFlash(c, "success", "Post updated successfully!")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", post.ID))
}

func DeletePostHandler(c echo.Context) error {
	logger := c.Logger()

	post, err := postForMutation(c)
	if err != nil {
		return err
	}

	if err := stores.NewPostStore(db.Conn).Delete(post); err != nil {
		logger.Errorf("Failed to delete post: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Post deleted successfully")
	views.AddFlash(c, "success", "Your post has been deleted!")
	return c.Redirect(http.StatusSeeOther, "/")
}

func loadPost(c echo.Context) (*models.Post, error) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "That post does not exist.")
	}
	post, err := stores.NewPostStore(db.Conn).Get(uint(id))
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "That post does not exist.")
		}
		c.Logger().Errorf("Failed to load post: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return post, nil
}

// postForMutation loads the post and enforces the author-only guard.
// "Exists but not yours" is a 403, never a 404.
func postForMutation(c echo.Context) (*models.Post, error) {
	post, err := loadPost(c)
	if err != nil {
		return nil, err
	}
	user := middlewares.AuthenticatedUser(c)
	if !post.IsAuthoredBy(user.ID) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "You are not allowed to modify this post.")
	}
	return post, nil
}
