package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/usecase"
)

type FeedController struct {
	FeedUsecase *usecase.FeedUsecase
	Log         *zap.Logger
	Config      *koanf.Koanf
}

func NewFeedController(feedUsecase *usecase.FeedUsecase, zap *zap.Logger, koanf *koanf.Koanf) *FeedController {
	return &FeedController{
		FeedUsecase: feedUsecase,
		Log:         zap,
		Config:      koanf,
	}
}

func (controller *FeedController) GetRSS(ctx *fiber.Ctx) error {
	rss, err := controller.FeedUsecase.GetRSS(ctx)
	if err != nil {
		return sendUsecaseError(ctx, controller.Log, err)
	}

	ctx.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return ctx.Status(fiber.StatusOK).SendString(rss)
}
