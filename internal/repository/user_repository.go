package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/model"
	"github.com/okorolev/pulseblog/internal/observability"
)

const avatarBundleCacheTTL = 5 * time.Minute

type UserRepository struct {
	Log     *zap.Logger
	DB      *pgxpool.Pool
	DBCache *redis.Client
}

func NewUserRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client) *UserRepository {
	return &UserRepository{
		Log:     zap,
		DB:      db,
		DBCache: dbCache,
	}
}

func (repository *UserRepository) GetUserInfo(ctx context.Context, id uuid.UUID) (model.UserResponse, error) {
	query := "SELECT id,username,active_avatar_id FROM users WHERE id=$1 LIMIT 1"

	user := model.UserResponse{}
	err := repository.DB.QueryRow(ctx, query, id).Scan(&user.UserId, &user.Username, &user.ActiveAvatarId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "User not found",
				Param:   "userId",
			}
		}
		return user, err
	}

	return user, nil
}

// FetchUserAvatarBundle satisfies avatar.BundleSource. Bundles are read on
// every rendered comment, so a short redis cache sits in front of postgres;
// cache failures fall through to the database.
func (repository *UserRepository) FetchUserAvatarBundle(ctx context.Context, userId uuid.UUID) (model.AvatarBundle, error) {
	cacheKey := fmt.Sprintf("avatarBundle:%s", userId)

	cached, err := repository.DBCache.Get(ctx, cacheKey).Result()
	if err == nil {
		bundle := model.AvatarBundle{}
		if err := sonic.Unmarshal([]byte(cached), &bundle); err == nil {
			return bundle, nil
		}
		repository.Log.Debug("discarding corrupted avatar bundle cache entry", zap.String("userId", userId.String()))
	} else if !errors.Is(err, redis.Nil) {
		observability.WithContext(ctx, repository.Log).Warn("failed to read avatar bundle cache", zap.Error(err))
	}

	bundle, err := repository.readAvatarBundle(ctx, userId)
	if err != nil {
		return bundle, err
	}

	encoded, err := sonic.Marshal(bundle)
	if err == nil {
		if err := repository.DBCache.Set(ctx, cacheKey, string(encoded), avatarBundleCacheTTL).Err(); err != nil {
			observability.WithContext(ctx, repository.Log).Warn("failed to write avatar bundle cache", zap.Error(err))
		}
	}

	return bundle, nil
}

func (repository *UserRepository) readAvatarBundle(ctx context.Context, userId uuid.UUID) (model.AvatarBundle, error) {
	bundle := model.AvatarBundle{}

	query := "SELECT active_avatar_id FROM users WHERE id=$1 LIMIT 1"
	err := repository.DB.QueryRow(ctx, query, userId).Scan(&bundle.ActiveAvatarId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bundle, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "User not found",
				Param:   "userId",
			}
		}
		return bundle, err
	}

	avatars, err := repository.ListAvatars(ctx, userId)
	if err != nil {
		return bundle, err
	}
	bundle.Avatars = avatars

	return bundle, nil
}

// InvalidateAvatarBundle drops the cached bundle after any avatar mutation.
func (repository *UserRepository) InvalidateAvatarBundle(ctx context.Context, userId uuid.UUID) {
	cacheKey := fmt.Sprintf("avatarBundle:%s", userId)
	if err := repository.DBCache.Del(ctx, cacheKey).Err(); err != nil {
		observability.WithContext(ctx, repository.Log).Warn("failed to invalidate avatar bundle cache", zap.Error(err))
	}
}

func (repository *UserRepository) ListAvatars(ctx context.Context, userId uuid.UUID) ([]model.Avatar, error) {
	query := "SELECT id,user_id,data_url,create_datetime,update_datetime FROM avatars WHERE user_id=$1 ORDER BY create_datetime ASC, id ASC"

	rows, err := repository.DB.Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	avatars := []model.Avatar{}
	for rows.Next() {
		avatar := model.Avatar{}
		err := rows.Scan(&avatar.Id, &avatar.UserId, &avatar.DataUrl, &avatar.CreateDatetime, &avatar.UpdateDatetime)
		if err != nil {
			return nil, err
		}
		avatars = append(avatars, avatar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return avatars, nil
}

func (repository *UserRepository) CountAvatars(ctx context.Context, userId uuid.UUID) (int, error) {
	query := "SELECT COUNT(*) FROM avatars WHERE user_id=$1"

	var count int
	err := repository.DB.QueryRow(ctx, query, userId).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (repository *UserRepository) AddAvatar(ctx context.Context, avatar model.Avatar) error {
	query := "INSERT INTO avatars (id,user_id,data_url,create_datetime,update_datetime) VALUES ($1,$2,$3,$4,$5)"

	_, err := repository.DB.Exec(ctx, query, avatar.Id, avatar.UserId, avatar.DataUrl, avatar.CreateDatetime, avatar.UpdateDatetime)
	if err != nil {
		return err
	}

	repository.InvalidateAvatarBundle(ctx, avatar.UserId)
	return nil
}

func (repository *UserRepository) DeleteAvatar(ctx context.Context, userId uuid.UUID, avatarId uuid.UUID) error {
	tx, err := repository.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, "DELETE FROM avatars WHERE id=$1 AND user_id=$2", avatarId, userId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Avatar not found",
			Param:   "avatarId",
		}
	}

	// Deleting the active avatar clears the selection.
	_, err = tx.Exec(ctx, "UPDATE users SET active_avatar_id=NULL, update_datetime=$1 WHERE id=$2 AND active_avatar_id=$3", time.Now(), userId, avatarId)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	repository.InvalidateAvatarBundle(ctx, userId)
	return nil
}

func (repository *UserRepository) SetActiveAvatar(ctx context.Context, userId uuid.UUID, avatarId uuid.UUID) error {
	query := `UPDATE users SET active_avatar_id=$1, update_datetime=$2
			WHERE id=$3 AND EXISTS (SELECT 1 FROM avatars WHERE id=$1 AND user_id=$3)`

	tag, err := repository.DB.Exec(ctx, query, avatarId, time.Now(), userId)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Avatar not found",
			Param:   "avatarId",
		}
	}

	repository.InvalidateAvatarBundle(ctx, userId)
	return nil
}
