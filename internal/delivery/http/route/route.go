package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okorolev/pulseblog/internal/delivery/http"
	"github.com/okorolev/pulseblog/internal/delivery/http/middleware"
)

type RouteConfig struct {
	App               *fiber.App
	AuthMiddleware    *middleware.AuthMiddleware
	WriteRateLimiter  fiber.Handler
	PostController    *http.PostController
	CommentController *http.CommentController
	UserController    *http.UserController
	FeedController    *http.FeedController
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Get("/feed.rss", c.FeedController.GetRSS)

	// Reads are public; auth guards are attached per write route because the
	// /posts and /users prefixes mix public and protected endpoints.
	protected := c.AuthMiddleware.ProtectedRoute()
	limited := c.WriteRateLimiter

	postGroup := api.Group("/posts")
	postGroup.Get("/", c.PostController.GetFeed)
	postGroup.Post("/", limited, protected, c.PostController.CreatePost)
	postGroup.Get("/:postId", c.PostController.GetPost)
	postGroup.Put("/:postId", limited, protected, c.PostController.UpdatePost)
	postGroup.Delete("/:postId", limited, protected, c.PostController.DeletePost)
	postGroup.Get("/:postId/comments", c.CommentController.GetComments)
	postGroup.Post("/:postId/comments", limited, protected, c.CommentController.CreateComment)
	postGroup.Delete("/:postId/comments/:commentId", limited, protected, c.CommentController.DeleteComment)

	userGroup := api.Group("/users")
	userGroup.Get("/me/avatars", protected, c.UserController.ListAvatars)
	userGroup.Post("/me/avatars", limited, protected, c.UserController.UploadAvatar)
	userGroup.Get("/me/avatars/recents", protected, c.UserController.GetRecentAvatars)
	userGroup.Post("/me/avatars/recents", limited, protected, c.UserController.SaveRecentAvatar)
	userGroup.Put("/me/avatars/:avatarId/active", limited, protected, c.UserController.SetActiveAvatar)
	userGroup.Delete("/me/avatars/:avatarId", limited, protected, c.UserController.DeleteAvatar)
	userGroup.Get("/:userId", c.UserController.GetUserProfile)
	userGroup.Get("/:userId/avatar", c.UserController.GetAvatarBundle)
}
