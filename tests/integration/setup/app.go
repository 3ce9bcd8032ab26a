package setup

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/avatar"
	"github.com/okorolev/pulseblog/internal/content"
	"github.com/okorolev/pulseblog/internal/delivery/http"
	"github.com/okorolev/pulseblog/internal/delivery/http/middleware"
	"github.com/okorolev/pulseblog/internal/delivery/http/route"
	"github.com/okorolev/pulseblog/internal/repository"
	"github.com/okorolev/pulseblog/internal/session"
	"github.com/okorolev/pulseblog/internal/usecase"
)

const TestJWTSecret = "test-secret-key-for-jwt-token-generation"

func SetupTestApp(t *testing.T, pgURL, redisURL string) (*fiber.App, *pgxpool.Pool, *redis.Client) {
	t.Log("Setting up test application...")

	ctx := context.Background()

	testConfig := koanf.New(".")
	_ = testConfig.Set("POSTGRES_URL", pgURL)
	_ = testConfig.Set("JWT_SECRET_KEY", TestJWTSecret)
	_ = testConfig.Set("SITE_URL", "http://localhost:8080")

	t.Log("Connecting to test PostgreSQL...")
	dbPool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		t.Fatalf("failed to connect to test db: %v", err)
	}

	t.Log("Connecting to test Redis...")
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
		DB:   0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect to test redis: %v", err)
	}

	zapLogger := zap.NewExample()
	defer func() {
		_ = zapLogger.Sync()
	}()

	renderer := content.NewRenderer()
	notifier := session.NewNotifier()
	recents := avatar.NewRecents(avatar.NewRedisKV(redisClient), zapLogger)

	userRepository := repository.NewUserRepository(zapLogger, dbPool, redisClient)
	postRepository := repository.NewPostRepository(zapLogger, dbPool)
	commentRepository := repository.NewCommentRepository(zapLogger, dbPool)

	resolver := avatar.NewResolver(userRepository, zapLogger)

	postUsecase := usecase.NewPostUsecase(postRepository, renderer, resolver, zapLogger, testConfig)
	commentUsecase := usecase.NewCommentUsecase(commentRepository, postRepository, renderer, resolver, zapLogger, testConfig)
	userUsecase := usecase.NewUserUsecase(userRepository, recents, zapLogger, testConfig)
	feedUsecase := usecase.NewFeedUsecase(postRepository, renderer, zapLogger, testConfig)

	postController := http.NewPostController(postUsecase, zapLogger, testConfig)
	commentController := http.NewCommentController(commentUsecase, zapLogger, testConfig)
	userController := http.NewUserController(userUsecase, zapLogger, testConfig)
	feedController := http.NewFeedController(feedUsecase, zapLogger, testConfig)

	fiberApp := fiber.New(fiber.Config{
		AppName:               "pulseblog test",
		DisableStartupMessage: true,
		DisableKeepalive:      true,
	})

	authMiddleware := middleware.NewAuthMiddleware(fiberApp, zapLogger, testConfig, notifier)

	routeConfig := route.RouteConfig{
		App:               fiberApp,
		AuthMiddleware:    authMiddleware,
		WriteRateLimiter:  middleware.SetupWriteRateLimiter(zapLogger),
		PostController:    postController,
		CommentController: commentController,
		UserController:    userController,
		FeedController:    feedController,
	}

	routeConfig.SetupRoute()

	t.Log("Test application setup completed successfully")

	return fiberApp, dbPool, redisClient
}
