package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/model"
	"github.com/okorolev/pulseblog/internal/session"
	"github.com/okorolev/pulseblog/internal/util"
)

type AuthMiddleware struct {
	App      *fiber.App
	Log      *zap.Logger
	Config   *koanf.Koanf
	Notifier *session.Notifier
}

func NewAuthMiddleware(app *fiber.App, zap *zap.Logger, koanf *koanf.Koanf, notifier *session.Notifier) *AuthMiddleware {
	return &AuthMiddleware{
		App:      app,
		Log:      zap,
		Config:   koanf,
		Notifier: notifier,
	}
}

func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		userId, err := util.ValidateAccessToken(authHeader, middleware.Config.String("JWT_SECRET_KEY"))
		if err != nil {
			var expiredErr *util.TokenExpiredError
			if errors.As(err, &expiredErr) {
				hint := ""
				if expiredErr.UserId != uuid.Nil {
					hint = expiredErr.UserId.String()
				}
				middleware.Notifier.NotifyExpired(hint)

				return util.SendErrorResponseUnauthorized(ctx, &model.ValidationError{
					Code:    constant.ERR_UNAUTHORIZED_ERROR,
					Message: "Authentication token is expired",
					Param:   "accessToken",
				})
			}

			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				return util.SendErrorResponseUnauthorized(ctx, err)
			}

			return util.SendErrorResponseInternalServer(ctx, middleware.Log, err)
		}

		ctx.Locals("userId", userId)

		return ctx.Next()
	}
}
