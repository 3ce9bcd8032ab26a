package usecase

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/avatar"
	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/model"
	"github.com/okorolev/pulseblog/internal/repository"
	"github.com/okorolev/pulseblog/internal/util"
)

type UserUsecase struct {
	UserRepository *repository.UserRepository
	Recents        *avatar.Recents
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewUserUsecase(userRepository *repository.UserRepository, recents *avatar.Recents, zap *zap.Logger, koanf *koanf.Koanf) *UserUsecase {
	return &UserUsecase{
		UserRepository: userRepository,
		Recents:        recents,
		Log:            zap,
		Config:         koanf,
	}
}

// GetUserProfile returns the public identity of a user, the target of
// mention links.
func (usecase *UserUsecase) GetUserProfile(ctx *fiber.Ctx, userIdParam string) (model.UserResponse, error) {
	userId, err := uuid.Parse(userIdParam)
	if err != nil {
		return model.UserResponse{}, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid user id",
			Param:   "userId",
		}
	}

	return usecase.UserRepository.GetUserInfo(ctx.Context(), userId)
}

// GetAvatarBundle is the public collaborator endpoint: a user's avatar set,
// active selection and a ready-to-embed image source. When no active avatar
// with image data exists the bundle falls back to the generated identicon.
func (usecase *UserUsecase) GetAvatarBundle(ctx *fiber.Ctx, userIdParam string) (model.AvatarBundleResponse, error) {
	response := model.AvatarBundleResponse{Avatars: []model.AvatarResponse{}}

	userId, err := uuid.Parse(userIdParam)
	if err != nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid user id",
			Param:   "userId",
		}
	}

	bundle, err := usecase.UserRepository.FetchUserAvatarBundle(ctx.Context(), userId)
	if err != nil {
		return response, err
	}

	return toBundleResponse(userId, bundle), nil
}

func toBundleResponse(userId uuid.UUID, bundle model.AvatarBundle) model.AvatarBundleResponse {
	response := model.AvatarBundleResponse{
		Avatars:        []model.AvatarResponse{},
		ActiveAvatarId: bundle.ActiveAvatarId,
	}

	for _, a := range bundle.Avatars {
		response.Avatars = append(response.Avatars, model.AvatarResponse{
			AvatarId:  a.Id,
			DataUrl:   a.DataUrl,
			CreatedAt: a.CreateDatetime,
		})

		if bundle.ActiveAvatarId != nil && a.Id == *bundle.ActiveAvatarId && a.DataUrl != "" {
			response.AvatarDataUrl = a.DataUrl
		}
	}

	if response.AvatarDataUrl == "" {
		response.AvatarDataUrl = avatar.FallbackDataURL(userId.String())
	}

	return response
}

func (usecase *UserUsecase) ListAvatars(ctx *fiber.Ctx, userId uuid.UUID) (model.AvatarBundleResponse, error) {
	bundle, err := usecase.UserRepository.FetchUserAvatarBundle(ctx.Context(), userId)
	if err != nil {
		return model.AvatarBundleResponse{Avatars: []model.AvatarResponse{}}, err
	}

	return toBundleResponse(userId, bundle), nil
}

func (usecase *UserUsecase) UploadAvatar(ctx *fiber.Ctx, userId uuid.UUID, payload model.AvatarUploadRequest) (model.AvatarResponse, error) {
	response := model.AvatarResponse{}

	if payload.DataUrl == "" {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Avatar data is required",
			Param:   "dataUrl",
		}
	}

	dataUrl, err := util.NormalizeAvatarDataURL(payload.DataUrl, "dataUrl")
	if err != nil {
		return response, err
	}

	ctxContext := ctx.Context()

	count, err := usecase.UserRepository.CountAvatars(ctxContext, userId)
	if err != nil {
		return response, err
	}

	if count >= constant.MAX_AVATARS_PER_USER {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("You can keep at most %d avatars", constant.MAX_AVATARS_PER_USER),
			Param:   "dataUrl",
		}
	}

	now := time.Now().UTC()

	newAvatar := model.Avatar{
		Id:             uuid.New(),
		UserId:         userId,
		DataUrl:        dataUrl,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	err = usecase.UserRepository.AddAvatar(ctxContext, newAvatar)
	if err != nil {
		return response, err
	}

	return model.AvatarResponse{
		AvatarId:  newAvatar.Id,
		DataUrl:   newAvatar.DataUrl,
		CreatedAt: newAvatar.CreateDatetime,
	}, nil
}

func (usecase *UserUsecase) SetActiveAvatar(ctx *fiber.Ctx, userId uuid.UUID, avatarIdParam string) error {
	avatarId, err := uuid.Parse(avatarIdParam)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid avatar id",
			Param:   "avatarId",
		}
	}

	return usecase.UserRepository.SetActiveAvatar(ctx.Context(), userId, avatarId)
}

func (usecase *UserUsecase) DeleteAvatar(ctx *fiber.Ctx, userId uuid.UUID, avatarIdParam string) error {
	avatarId, err := uuid.Parse(avatarIdParam)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid avatar id",
			Param:   "avatarId",
		}
	}

	return usecase.UserRepository.DeleteAvatar(ctx.Context(), userId, avatarId)
}

func (usecase *UserUsecase) GetRecentAvatars(ctx *fiber.Ctx, userId uuid.UUID) (model.AvatarRecentsResponse, error) {
	response := model.AvatarRecentsResponse{Recents: []model.AvatarResponse{}}

	ctxContext := ctx.Context()

	ids := usecase.Recents.Get(ctxContext, userId)
	if len(ids) == 0 {
		return response, nil
	}

	avatars, err := usecase.UserRepository.ListAvatars(ctxContext, userId)
	if err != nil {
		return response, err
	}

	for _, a := range avatar.ResolveRecents(ids, avatars) {
		response.Recents = append(response.Recents, model.AvatarResponse{
			AvatarId:  a.Id,
			DataUrl:   a.DataUrl,
			CreatedAt: a.CreateDatetime,
		})
	}

	return response, nil
}

// SaveRecentAvatar records an avatar pick at the front of the user's recents
// list and returns the updated, resolved list.
func (usecase *UserUsecase) SaveRecentAvatar(ctx *fiber.Ctx, userId uuid.UUID, payload model.AvatarRecentRequest) (model.AvatarRecentsResponse, error) {
	response := model.AvatarRecentsResponse{Recents: []model.AvatarResponse{}}

	if payload.AvatarId != "" {
		if _, err := uuid.Parse(payload.AvatarId); err != nil {
			return response, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Invalid avatar id",
				Param:   "avatarId",
			}
		}
	}

	ctxContext := ctx.Context()

	ids := usecase.Recents.Save(ctxContext, userId, payload.AvatarId)
	if len(ids) == 0 {
		return response, nil
	}

	avatars, err := usecase.UserRepository.ListAvatars(ctxContext, userId)
	if err != nil {
		return response, err
	}

	for _, a := range avatar.ResolveRecents(ids, avatars) {
		response.Recents = append(response.Recents, model.AvatarResponse{
			AvatarId:  a.Id,
			DataUrl:   a.DataUrl,
			CreatedAt: a.CreateDatetime,
		})
	}

	return response, nil
}
