package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/model"
)

type PostRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewPostRepository(zap *zap.Logger, db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *PostRepository) CreatePost(ctx context.Context, post model.Post) error {
	query := "INSERT INTO posts (id, author_id, title, content, tags, post_avatar_id, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)"

	_, err := repository.DB.Exec(ctx, query, post.Id, post.AuthorId, post.Title, post.Content, post.Tags, post.PostAvatarId, post.CreateDatetime, post.UpdateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostRepository) GetPost(ctx context.Context, postId uuid.UUID) (model.Post, error) {
	query := `
		SELECT p.id, p.author_id, u.username, p.title, p.content, p.tags, p.post_avatar_id, p.create_datetime, p.update_datetime
		FROM posts p
		INNER JOIN users u ON p.author_id = u.id
		WHERE p.id = $1
	`

	post := model.Post{}
	err := repository.DB.QueryRow(ctx, query, postId).Scan(&post.Id, &post.AuthorId, &post.Username, &post.Title, &post.Content, &post.Tags, &post.PostAvatarId, &post.CreateDatetime, &post.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "Post not found",
				Param:   "postId",
			}
		}
		return post, err
	}

	return post, nil
}

func (repository *PostRepository) CheckPostExists(ctx context.Context, postId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM posts WHERE id = $1"

	var exists int
	err := repository.DB.QueryRow(ctx, query, postId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}

		return exists, err
	}

	return exists, nil
}

func (repository *PostRepository) CheckPostOwnership(ctx context.Context, postId uuid.UUID, userId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM posts WHERE id = $1 AND author_id = $2"

	var exists int
	err := repository.DB.QueryRow(ctx, query, postId, userId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}

		return exists, err
	}

	return exists, nil
}

// GetFeed returns a page of posts newest first, optionally filtered by tag,
// using keyset pagination on (create_datetime, id).
func (repository *PostRepository) GetFeed(ctx context.Context, limit int, tag string, cursor *model.PostCursor) ([]model.Post, error) {
	var rows pgx.Rows
	var err error

	baseSelect := `
		SELECT p.id, p.author_id, u.username, p.title, p.content, p.tags, p.post_avatar_id, p.create_datetime, p.update_datetime
		FROM posts p
		INNER JOIN users u ON p.author_id = u.id
	`

	if cursor != nil && cursor.Id != uuid.Nil && !cursor.CreateDatetime.IsZero() {
		if tag != "" {
			query := baseSelect + `
				WHERE $1 = ANY(p.tags)
				AND (p.create_datetime < $2 OR (p.create_datetime = $2 AND p.id < $3))
				ORDER BY p.create_datetime DESC, p.id DESC
				LIMIT $4
			`
			rows, err = repository.DB.Query(ctx, query, tag, cursor.CreateDatetime, cursor.Id, limit)
		} else {
			query := baseSelect + `
				WHERE (p.create_datetime < $1 OR (p.create_datetime = $1 AND p.id < $2))
				ORDER BY p.create_datetime DESC, p.id DESC
				LIMIT $3
			`
			rows, err = repository.DB.Query(ctx, query, cursor.CreateDatetime, cursor.Id, limit)
		}
	} else {
		if tag != "" {
			query := baseSelect + `
				WHERE $1 = ANY(p.tags)
				ORDER BY p.create_datetime DESC, p.id DESC
				LIMIT $2
			`
			rows, err = repository.DB.Query(ctx, query, tag, limit)
		} else {
			query := baseSelect + `
				ORDER BY p.create_datetime DESC, p.id DESC
				LIMIT $1
			`
			rows, err = repository.DB.Query(ctx, query, limit)
		}
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post := model.Post{}
		err := rows.Scan(&post.Id, &post.AuthorId, &post.Username, &post.Title, &post.Content, &post.Tags, &post.PostAvatarId, &post.CreateDatetime, &post.UpdateDatetime)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (repository *PostRepository) UpdatePost(ctx context.Context, post model.Post, updateDatetime time.Time) error {
	query := "UPDATE posts SET title = $1, content = $2, tags = $3, post_avatar_id = $4, update_datetime = $5 WHERE id = $6"

	_, err := repository.DB.Exec(ctx, query, post.Title, post.Content, post.Tags, post.PostAvatarId, updateDatetime, post.Id)
	if err != nil {
		return err
	}

	return nil
}

// DeletePost removes the post and its comments. Comment parent links are
// plain uuid columns, so the whole comment set goes with the post.
func (repository *PostRepository) DeletePost(ctx context.Context, postId uuid.UUID) error {
	tx, err := repository.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "DELETE FROM comments WHERE post_id = $1", postId)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, "DELETE FROM posts WHERE id = $1", postId)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
