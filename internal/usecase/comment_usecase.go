package usecase

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/avatar"
	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/content"
	"github.com/okorolev/pulseblog/internal/model"
	"github.com/okorolev/pulseblog/internal/repository"
	"github.com/okorolev/pulseblog/internal/thread"
)

type CommentUsecase struct {
	CommentRepository *repository.CommentRepository
	PostRepository    *repository.PostRepository
	Renderer          *content.Renderer
	Resolver          *avatar.Resolver
	Log               *zap.Logger
	Config            *koanf.Koanf
}

func NewCommentUsecase(commentRepository *repository.CommentRepository, postRepository *repository.PostRepository, renderer *content.Renderer, resolver *avatar.Resolver, zap *zap.Logger, koanf *koanf.Koanf) *CommentUsecase {
	return &CommentUsecase{
		CommentRepository: commentRepository,
		PostRepository:    postRepository,
		Renderer:          renderer,
		Resolver:          resolver,
		Log:               zap,
		Config:            koanf,
	}
}

func (usecase *CommentUsecase) GetComments(ctx *fiber.Ctx, postIdParam string) (model.CommentThreadResponse, error) {
	response := model.CommentThreadResponse{Comments: []model.CommentView{}}

	postId, err := uuid.Parse(postIdParam)
	if err != nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid post id",
			Param:   "postId",
		}
	}

	ctxContext := ctx.Context()

	postExists, err := usecase.PostRepository.CheckPostExists(ctxContext, postId)
	if err != nil {
		return response, err
	}

	if postExists != 1 {
		return response, &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Post not found",
			Param:   "postId",
		}
	}

	comments, err := usecase.CommentRepository.GetComments(ctxContext, postId)
	if err != nil {
		return response, err
	}

	return usecase.buildThread(ctxContext, comments), nil
}

// buildThread reconstructs the nested thread from the flat comment set and
// renders every retained node. Replies to missing parents are dropped and
// the reported total counts retained nodes only.
func (usecase *CommentUsecase) buildThread(ctx context.Context, comments []model.Comment) model.CommentThreadResponse {
	roots := thread.Build(comments)

	views := make([]model.CommentView, 0, len(roots))
	for _, root := range roots {
		views = append(views, usecase.toCommentView(ctx, root))
	}

	return model.CommentThreadResponse{
		Comments: views,
		Total:    thread.Count(roots),
	}
}

func (usecase *CommentUsecase) toCommentView(ctx context.Context, node *model.CommentNode) model.CommentView {
	view := model.CommentView{
		CommentId:       node.Id,
		ParentCommentId: node.ParentCommentId,
		UserId:          node.UserId,
		Username:        node.Username,
		Content:         usecase.Renderer.Render(node.Content, false),
		Avatar:          usecase.Resolver.Resolve(ctx, &node.UserId, node.CommentAvatarId, node.Username),
		CreatedAt:       node.CreateDatetime,
		Replies:         []model.CommentView{},
	}

	for _, reply := range node.Replies {
		view.Replies = append(view.Replies, usecase.toCommentView(ctx, reply))
	}

	return view
}

func (usecase *CommentUsecase) CreateComment(ctx *fiber.Ctx, postIdParam string, userId uuid.UUID, payload model.CommentCreateRequest) error {
	postId, err := uuid.Parse(postIdParam)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid post id",
			Param:   "postId",
		}
	}

	if payload.Content == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Content is required",
			Param:   "content",
		}
	}

	ctxContext := ctx.Context()

	postExists, err := usecase.PostRepository.CheckPostExists(ctxContext, postId)
	if err != nil {
		return err
	}

	if postExists != 1 {
		return &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Post not found",
			Param:   "postId",
		}
	}

	var parentCommentId *uuid.UUID
	if payload.ParentCommentId != nil && *payload.ParentCommentId != "" {
		parentId, err := uuid.Parse(*payload.ParentCommentId)
		if err != nil {
			return &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Invalid parent comment id",
				Param:   "parentCommentId",
			}
		}

		// Parent must exist and live in the same post, otherwise the new
		// comment would be born an orphan and never show up.
		parentExists, err := usecase.CommentRepository.CheckCommentExists(ctxContext, parentId, postId)
		if err != nil {
			return err
		}

		if parentExists != 1 {
			return &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Parent comment not found in this post",
				Param:   "parentCommentId",
			}
		}

		parentCommentId = &parentId
	}

	var commentAvatarId *uuid.UUID
	if payload.CommentAvatarId != nil && *payload.CommentAvatarId != "" {
		avatarId, err := uuid.Parse(*payload.CommentAvatarId)
		if err != nil {
			return &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Invalid comment avatar id",
				Param:   "commentAvatarId",
			}
		}
		commentAvatarId = &avatarId
	}

	now := time.Now().UTC()

	comment := model.Comment{
		Id:              uuid.New(),
		PostId:          postId,
		ParentCommentId: parentCommentId,
		UserId:          userId,
		Content:         payload.Content,
		CommentAvatarId: commentAvatarId,
		CreateDatetime:  now,
		UpdateDatetime:  now,
	}

	err = usecase.CommentRepository.CreateComment(ctxContext, comment)
	if err != nil {
		return err
	}

	return nil
}

func (usecase *CommentUsecase) DeleteComment(ctx *fiber.Ctx, postIdParam string, commentIdParam string, userId uuid.UUID) error {
	postId, err := uuid.Parse(postIdParam)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid post id",
			Param:   "postId",
		}
	}

	commentId, err := uuid.Parse(commentIdParam)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid comment id",
			Param:   "commentId",
		}
	}

	ctxContext := ctx.Context()

	commentExists, err := usecase.CommentRepository.CheckCommentExists(ctxContext, commentId, postId)
	if err != nil {
		return err
	}

	if commentExists != 1 {
		return &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Comment not found",
			Param:   "commentId",
		}
	}

	ownerExists, err := usecase.CommentRepository.CheckCommentOwnership(ctxContext, commentId, userId)
	if err != nil {
		return err
	}

	if ownerExists != 1 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "You are not the author of this comment",
			Param:   "commentId",
		}
	}

	err = usecase.CommentRepository.DeleteComment(ctxContext, commentId)
	if err != nil {
		return err
	}

	return nil
}
