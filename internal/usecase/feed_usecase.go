package usecase

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/feeds"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/content"
	"github.com/okorolev/pulseblog/internal/repository"
)

type FeedUsecase struct {
	PostRepository *repository.PostRepository
	Renderer       *content.Renderer
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewFeedUsecase(postRepository *repository.PostRepository, renderer *content.Renderer, zap *zap.Logger, koanf *koanf.Koanf) *FeedUsecase {
	return &FeedUsecase{
		PostRepository: postRepository,
		Renderer:       renderer,
		Log:            zap,
		Config:         koanf,
	}
}

// GetRSS renders the latest posts as an RSS feed. Item bodies go through the
// same markdown pipeline as the JSON API so feed readers never see raw
// markup either.
func (usecase *FeedUsecase) GetRSS(ctx *fiber.Ctx) (string, error) {
	siteUrl := usecase.Config.String("SITE_URL")
	if siteUrl == "" {
		siteUrl = "http://localhost:8080"
	}

	posts, err := usecase.PostRepository.GetFeed(ctx.Context(), constant.DEFAULT_LIMIT, "", nil)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	feed := &feeds.Feed{
		Title:       "pulseblog",
		Link:        &feeds.Link{Href: siteUrl},
		Description: "Latest posts",
		Created:     now,
	}

	for _, post := range posts {
		rendered := usecase.Renderer.Render(post.Content, false)

		feed.Items = append(feed.Items, &feeds.Item{
			Id:          post.Id.String(),
			Title:       post.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/posts/%s", siteUrl, post.Id)},
			Author:      &feeds.Author{Name: post.Username},
			Description: rendered.Html,
			Created:     post.CreateDatetime,
			Updated:     post.UpdateDatetime,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", err
	}

	return rss, nil
}
