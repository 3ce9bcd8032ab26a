package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/middleware"
	"github.com/okorolev/pulseblog/internal/model"
	"github.com/okorolev/pulseblog/internal/util"
)

// sendUsecaseError maps usecase failures onto HTTP statuses by error code.
// Anything that is not a ValidationError is a 500, logged with trace
// correlation when available.
func sendUsecaseError(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	var validationErr *model.ValidationError
	if !errors.As(err, &validationErr) {
		return util.SendErrorResponseInternalServer(ctx, middleware.GetLoggerFromContext(ctx, log), err)
	}

	switch validationErr.Code {
	case constant.ERR_NOT_FOUND_ERROR:
		return util.SendErrorResponseNotFound(ctx, err)
	case constant.ERR_UNAUTHORIZED_ERROR:
		return util.SendErrorResponseUnauthorized(ctx, err)
	default:
		return util.SendErrorResponse(ctx, err)
	}
}
