package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/model"
)

type CommentRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewCommentRepository(zap *zap.Logger, db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *CommentRepository) CreateComment(ctx context.Context, comment model.Comment) error {
	query := "INSERT INTO comments (id, post_id, author_id, parent_id, content, comment_avatar_id, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)"

	_, err := repository.DB.Exec(ctx, query, comment.Id, comment.PostId, comment.UserId, comment.ParentCommentId, comment.Content, comment.CommentAvatarId, comment.CreateDatetime, comment.UpdateDatetime)
	if err != nil {
		return err
	}

	return nil
}

// GetComments returns the full flat comment set of a post in creation order.
// Tree shape is reconstructed in memory on every read.
func (repository *CommentRepository) GetComments(ctx context.Context, postId uuid.UUID) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.parent_id, c.author_id, u.username, c.content, c.comment_avatar_id, c.create_datetime, c.update_datetime
		FROM comments c
		INNER JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.create_datetime ASC, c.id ASC
	`

	rows, err := repository.DB.Query(ctx, query, postId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		comment := model.Comment{}
		err := rows.Scan(&comment.Id, &comment.PostId, &comment.ParentCommentId, &comment.UserId, &comment.Username, &comment.Content, &comment.CommentAvatarId, &comment.CreateDatetime, &comment.UpdateDatetime)
		if err != nil {
			return nil, err
		}

		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (repository *CommentRepository) GetComment(ctx context.Context, commentId uuid.UUID) (model.Comment, error) {
	query := "SELECT id, post_id, parent_id, author_id, content, comment_avatar_id, create_datetime, update_datetime FROM comments WHERE id = $1"

	comment := model.Comment{}
	err := repository.DB.QueryRow(ctx, query, commentId).Scan(&comment.Id, &comment.PostId, &comment.ParentCommentId, &comment.UserId, &comment.Content, &comment.CommentAvatarId, &comment.CreateDatetime, &comment.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return comment, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "Comment not found",
				Param:   "commentId",
			}
		}
		return comment, err
	}

	return comment, nil
}

func (repository *CommentRepository) CheckCommentExists(ctx context.Context, commentId uuid.UUID, postId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM comments WHERE id = $1 AND post_id = $2"

	var exists int
	err := repository.DB.QueryRow(ctx, query, commentId, postId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}

		return exists, err
	}

	return exists, nil
}

func (repository *CommentRepository) CheckCommentOwnership(ctx context.Context, commentId uuid.UUID, userId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM comments WHERE id = $1 AND author_id = $2"

	var exists int
	err := repository.DB.QueryRow(ctx, query, commentId, userId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}

		return exists, err
	}

	return exists, nil
}

// DeleteComment removes a comment and every descendant reply. parent_id
// carries no foreign key, so the subtree is collected with a recursive CTE
// instead of cascade rules.
func (repository *CommentRepository) DeleteComment(ctx context.Context, commentId uuid.UUID) error {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM comments WHERE id = $1
			UNION ALL
			SELECT c.id FROM comments c
			INNER JOIN subtree s ON c.parent_id = s.id
		)
		DELETE FROM comments WHERE id IN (SELECT id FROM subtree)
	`

	_, err := repository.DB.Exec(ctx, query, commentId)
	if err != nil {
		return err
	}

	return nil
}
