package avatar

import (
	"context"
	"errors"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/model"
)

const (
	recentsKeyName = "avatarRecents"
	maxRecents     = 6
)

// KV is the durable key-value surface the recents cache needs. Absent keys
// read as ("", nil).
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type redisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) KV {
	return redisKV{client: client}
}

func (r redisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (r redisKV) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Recents tracks recently used avatar ids per user, most recent first,
// capped at six. It is a convenience cache: writes are last-write-wins and
// every failure mode degrades to an empty list.
type Recents struct {
	KV  KV
	Log *zap.Logger
}

func NewRecents(kv KV, zap *zap.Logger) *Recents {
	return &Recents{
		KV:  kv,
		Log: zap,
	}
}

// This service is multi-user, so the fixed key name is scoped per user.
func (r *Recents) key(userId uuid.UUID) string {
	return recentsKeyName + ":" + userId.String()
}

// Get returns the stored recent ids. Corrupted or non-array payloads and
// read failures all resolve to an empty list.
func (r *Recents) Get(ctx context.Context, userId uuid.UUID) []string {
	raw, err := r.KV.Get(ctx, r.key(userId))
	if err != nil {
		r.Log.Warn("failed to read avatar recents", zap.Error(err))
		return []string{}
	}
	if raw == "" {
		return []string{}
	}

	var ids []string
	if err := sonic.Unmarshal([]byte(raw), &ids); err != nil {
		r.Log.Debug("discarding corrupted avatar recents payload", zap.Error(err))
		return []string{}
	}

	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// Save moves avatarId to the front, deduplicated, evicting beyond the cap,
// and returns the updated list. An empty id is a no-op returning the
// current list.
func (r *Recents) Save(ctx context.Context, userId uuid.UUID, avatarId string) []string {
	current := r.Get(ctx, userId)
	if avatarId == "" {
		return current
	}

	next := make([]string, 0, maxRecents)
	next = append(next, avatarId)
	for _, id := range current {
		if id == avatarId {
			continue
		}
		next = append(next, id)
		if len(next) == maxRecents {
			break
		}
	}

	encoded, err := sonic.Marshal(next)
	if err != nil {
		r.Log.Warn("failed to encode avatar recents", zap.Error(err))
		return next
	}
	if err := r.KV.Set(ctx, r.key(userId), string(encoded)); err != nil {
		r.Log.Warn("failed to store avatar recents", zap.Error(err))
	}

	return next
}

// ResolveRecents maps recent ids to full avatar records, preserving id
// order and silently dropping ids with no matching avatar.
func ResolveRecents(ids []string, avatars []model.Avatar) []model.Avatar {
	byId := make(map[string]model.Avatar, len(avatars))
	for _, a := range avatars {
		byId[a.Id.String()] = a
	}

	resolved := make([]model.Avatar, 0, len(ids))
	for _, id := range ids {
		if a, ok := byId[id]; ok {
			resolved = append(resolved, a)
		}
	}
	return resolved
}
