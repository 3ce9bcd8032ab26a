package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/avatar"
	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/content"
	"github.com/okorolev/pulseblog/internal/model"
	"github.com/okorolev/pulseblog/internal/repository"
)

type PostUsecase struct {
	PostRepository *repository.PostRepository
	Renderer       *content.Renderer
	Resolver       *avatar.Resolver
	Log            *zap.Logger
	Config         *koanf.Koanf

	// Legacy posts rendered verbatim instead of as markdown, from
	// PLAINTEXT_POST_IDS.
	plainTextPosts map[string]bool
}

func NewPostUsecase(postRepository *repository.PostRepository, renderer *content.Renderer, resolver *avatar.Resolver, zap *zap.Logger, koanf *koanf.Koanf) *PostUsecase {
	plainTextPosts := map[string]bool{}
	for _, id := range strings.Split(koanf.String("PLAINTEXT_POST_IDS"), ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			plainTextPosts[id] = true
		}
	}

	return &PostUsecase{
		PostRepository: postRepository,
		Renderer:       renderer,
		Resolver:       resolver,
		Log:            zap,
		Config:         koanf,
		plainTextPosts: plainTextPosts,
	}
}

func (usecase *PostUsecase) isPlainTextPost(postId uuid.UUID) bool {
	return usecase.plainTextPosts[postId.String()]
}

func (usecase *PostUsecase) toPostView(ctx context.Context, post model.Post) model.PostView {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	return model.PostView{
		PostId:    post.Id,
		UserId:    post.AuthorId,
		Username:  post.Username,
		Title:     post.Title,
		Content:   usecase.Renderer.Render(post.Content, usecase.isPlainTextPost(post.Id)),
		Tags:      tags,
		Avatar:    usecase.Resolver.Resolve(ctx, &post.AuthorId, post.PostAvatarId, post.Username),
		CreatedAt: post.CreateDatetime,
		UpdatedAt: post.UpdateDatetime,
	}
}

func (usecase *PostUsecase) GetFeed(ctx *fiber.Ctx) (model.PostListResponse, error) {
	response := model.PostListResponse{}
	response.Data = []model.PostView{}

	limit := ctx.QueryInt("limit", constant.DEFAULT_LIMIT)
	cursor := ctx.Query("cursor", "")
	tag := ctx.Query("tag", "")

	if limit < 1 {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Limit must be greater than 0",
			Param:   "limit",
		}
	} else if limit > constant.MAX_LIMIT {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Limit is exceeded max limit: %d", constant.MAX_LIMIT),
			Param:   "limit",
		}
	}

	var postCursor model.PostCursor
	if cursor != "" {
		b, err := base64.RawURLEncoding.DecodeString(cursor)
		if err != nil {
			return response, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Invalid cursor",
				Param:   "cursor",
			}
		}

		err = sonic.Unmarshal(b, &postCursor)
		if err != nil {
			return response, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Invalid cursor",
				Param:   "cursor",
			}
		}
	}

	ctxContext := ctx.Context()

	// Fetch limit + 1 to know whether another page exists.
	posts, err := usecase.PostRepository.GetFeed(ctxContext, limit+1, tag, &postCursor)
	if err != nil {
		return response, err
	}

	if len(posts) > limit {
		posts = posts[:limit]

		last := posts[limit-1]
		nextCursor := model.PostCursor{
			Id:             last.Id,
			CreateDatetime: last.CreateDatetime,
		}

		b, err := sonic.Marshal(nextCursor)
		if err != nil {
			return response, err
		}

		response.Page.NextCursor = base64.RawURLEncoding.EncodeToString(b)
	}

	for _, post := range posts {
		response.Data = append(response.Data, usecase.toPostView(ctxContext, post))
	}

	return response, nil
}

func (usecase *PostUsecase) GetPost(ctx *fiber.Ctx, postIdParam string) (model.PostView, error) {
	view := model.PostView{}

	postId, err := uuid.Parse(postIdParam)
	if err != nil {
		return view, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid post id",
			Param:   "postId",
		}
	}

	ctxContext := ctx.Context()

	post, err := usecase.PostRepository.GetPost(ctxContext, postId)
	if err != nil {
		return view, err
	}

	return usecase.toPostView(ctxContext, post), nil
}

func validatePostPayload(title string, postContent string, tags []string, postAvatarIdParam *string) (*uuid.UUID, error) {
	if title == "" {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Title is required",
			Param:   "title",
		}
	}

	if postContent == "" {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Content is required",
			Param:   "content",
		}
	}

	if len(tags) > constant.MAX_TAGS_PER_POST {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("A post can carry at most %d tags", constant.MAX_TAGS_PER_POST),
			Param:   "tags",
		}
	}

	for _, tag := range tags {
		if tag == "" {
			return nil, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Tags must not be empty",
				Param:   "tags",
			}
		}
	}

	var postAvatarId *uuid.UUID
	if postAvatarIdParam != nil && *postAvatarIdParam != "" {
		avatarId, err := uuid.Parse(*postAvatarIdParam)
		if err != nil {
			return nil, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Invalid post avatar id",
				Param:   "postAvatarId",
			}
		}
		postAvatarId = &avatarId
	}

	return postAvatarId, nil
}

func (usecase *PostUsecase) CreatePost(ctx *fiber.Ctx, userId uuid.UUID, payload model.PostCreateRequest) (uuid.UUID, error) {
	postAvatarId, err := validatePostPayload(payload.Title, payload.Content, payload.Tags, payload.PostAvatarId)
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now().UTC()

	post := model.Post{
		Id:             uuid.New(),
		AuthorId:       userId,
		Title:          payload.Title,
		Content:        payload.Content,
		Tags:           payload.Tags,
		PostAvatarId:   postAvatarId,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	err = usecase.PostRepository.CreatePost(ctx.Context(), post)
	if err != nil {
		return uuid.Nil, err
	}

	return post.Id, nil
}

func (usecase *PostUsecase) UpdatePost(ctx *fiber.Ctx, postIdParam string, userId uuid.UUID, payload model.PostUpdateRequest) error {
	postId, err := uuid.Parse(postIdParam)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid post id",
			Param:   "postId",
		}
	}

	postAvatarId, err := validatePostPayload(payload.Title, payload.Content, payload.Tags, payload.PostAvatarId)
	if err != nil {
		return err
	}

	ctxContext := ctx.Context()

	ownerExists, err := usecase.PostRepository.CheckPostOwnership(ctxContext, postId, userId)
	if err != nil {
		return err
	}

	if ownerExists != 1 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "You are not the author of this post",
			Param:   "postId",
		}
	}

	post := model.Post{
		Id:           postId,
		Title:        payload.Title,
		Content:      payload.Content,
		Tags:         payload.Tags,
		PostAvatarId: postAvatarId,
	}

	err = usecase.PostRepository.UpdatePost(ctxContext, post, time.Now().UTC())
	if err != nil {
		return err
	}

	return nil
}

func (usecase *PostUsecase) DeletePost(ctx *fiber.Ctx, postIdParam string, userId uuid.UUID) error {
	postId, err := uuid.Parse(postIdParam)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid post id",
			Param:   "postId",
		}
	}

	ctxContext := ctx.Context()

	ownerExists, err := usecase.PostRepository.CheckPostOwnership(ctxContext, postId, userId)
	if err != nil {
		return err
	}

	if ownerExists != 1 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "You are not the author of this post",
			Param:   "postId",
		}
	}

	err = usecase.PostRepository.DeletePost(ctxContext, postId)
	if err != nil {
		return err
	}

	return nil
}
