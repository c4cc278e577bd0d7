// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"quillbox-server/commons"
	"quillbox-server/handlers"
	"quillbox-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering routes")

	e.GET("/", handlers.HomeHandler)
	e.GET("/home", handlers.HomeHandler)
	e.GET("/about", handlers.AboutHandler)

	e.GET("/register", handlers.RegisterPageHandler, middlewares.AnonymousOnly)
	e.POST("/register", handlers.RegisterHandler, middlewares.AnonymousOnly)
	e.GET("/login", handlers.LoginPageHandler, middlewares.AnonymousOnly)
	e.POST("/login", handlers.LoginHandler, middlewares.AnonymousOnly)
	e.GET("/logout", handlers.LogoutHandler)
	e.POST("/logout", handlers.LogoutHandler)

	e.GET("/account", handlers.AccountPageHandler, middlewares.RequireAuth)
	e.POST("/account", handlers.AccountHandler, middlewares.RequireAuth)

	e.GET("/post/new", handlers.NewPostPageHandler, middlewares.RequireAuth)
	e.POST("/post/new", handlers.CreatePostHandler, middlewares.RequireAuth)
	e.GET("/post/:post_id", handlers.PostPageHandler)
	e.GET("/post/:post_id/update", handlers.UpdatePostPageHandler, middlewares.RequireAuth)
	e.POST("/post/:post_id/update", handlers.UpdatePostHandler, middlewares.RequireAuth)
	e.POST("/post/:post_id/delete", handlers.DeletePostHandler, middlewares.RequireAuth)

	e.GET("/user/:username", handlers.UserPostsHandler)

	e.GET("/reset_password", handlers.ResetRequestPageHandler, middlewares.AnonymousOnly)
	e.POST("/reset_password", handlers.ResetRequestHandler, middlewares.AnonymousOnly)
	e.GET("/reset_password/:token", handlers.ResetTokenPageHandler, middlewares.AnonymousOnly)
	e.POST("/reset_password/:token", handlers.ResetTokenHandler, middlewares.AnonymousOnly)

	e.GET("/avatars/*", handlers.ServeAvatarFile)

	commons.Logger.Info("Routes registered successfully")
}
