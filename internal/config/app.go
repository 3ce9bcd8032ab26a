package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/avatar"
	"github.com/okorolev/pulseblog/internal/content"
	http "github.com/okorolev/pulseblog/internal/delivery/http"
	"github.com/okorolev/pulseblog/internal/delivery/http/middleware"
	"github.com/okorolev/pulseblog/internal/delivery/http/route"
	"github.com/okorolev/pulseblog/internal/repository"
	"github.com/okorolev/pulseblog/internal/session"
	"github.com/okorolev/pulseblog/internal/usecase"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
}

func Server(config *ServerConfig) {
	renderer := content.NewRenderer()
	notifier := session.NewNotifier()
	recents := avatar.NewRecents(avatar.NewRedisKV(config.DBCache), config.Log)

	userRepository := repository.NewUserRepository(config.Log, config.DB, config.DBCache)
	postRepository := repository.NewPostRepository(config.Log, config.DB)
	commentRepository := repository.NewCommentRepository(config.Log, config.DB)

	resolver := avatar.NewResolver(userRepository, config.Log)

	postUsecase := usecase.NewPostUsecase(postRepository, renderer, resolver, config.Log, config.Config)
	commentUsecase := usecase.NewCommentUsecase(commentRepository, postRepository, renderer, resolver, config.Log, config.Config)
	userUsecase := usecase.NewUserUsecase(userRepository, recents, config.Log, config.Config)
	feedUsecase := usecase.NewFeedUsecase(postRepository, renderer, config.Log, config.Config)

	postController := http.NewPostController(postUsecase, config.Log, config.Config)
	commentController := http.NewCommentController(commentUsecase, config.Log, config.Config)
	userController := http.NewUserController(userUsecase, config.Log, config.Config)
	feedController := http.NewFeedController(feedUsecase, config.Log, config.Config)

	authMiddleware := middleware.NewAuthMiddleware(config.Router, config.Log, config.Config, notifier)

	// Expired sessions are only logged server-side; the handler slot exists
	// so a future credential cache can hook eviction here.
	notifier.SetExpiredHandler(func(userId string) {
		config.Log.Info("session expired", zap.String("userId", userId))
	})

	routeConfig := route.RouteConfig{
		App:               config.Router,
		AuthMiddleware:    authMiddleware,
		WriteRateLimiter:  middleware.SetupWriteRateLimiter(config.Log),
		PostController:    postController,
		CommentController: commentController,
		UserController:    userController,
		FeedController:    feedController,
	}

	routeConfig.SetupRoute()
}
