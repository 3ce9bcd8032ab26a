package avatar

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/model"
)

// BundleSource supplies a user's avatar set and active selection. The
// repository layer implements it against postgres with a redis read cache.
type BundleSource interface {
	FetchUserAvatarBundle(ctx context.Context, userId uuid.UUID) (model.AvatarBundle, error)
}

type Resolver struct {
	Source BundleSource
	Log    *zap.Logger
}

func NewResolver(source BundleSource, zap *zap.Logger) *Resolver {
	return &Resolver{
		Source: source,
		Log:    zap,
	}
}

// Resolve picks the image source for one content item. Order: the item's
// explicit avatar id, then the author's active avatar, then the default
// glyph. Without a userId no lookup happens at all and the glyph is
// returned synchronously. Lookup failures degrade to the glyph and are
// logged, never surfaced.
func (r *Resolver) Resolve(ctx context.Context, userId *uuid.UUID, explicitAvatarId *uuid.UUID, username string) model.AvatarView {
	if userId == nil {
		return glyphView(username)
	}

	bundle, err := r.Source.FetchUserAvatarBundle(ctx, *userId)
	if err != nil {
		r.Log.Warn("failed to fetch avatar bundle, falling back to glyph",
			zap.String("userId", userId.String()),
			zap.Error(err))
		return glyphView(username)
	}

	if explicitAvatarId != nil {
		if view, ok := findAvatar(bundle.Avatars, *explicitAvatarId); ok {
			return view
		}
	}

	if bundle.ActiveAvatarId != nil {
		if view, ok := findAvatar(bundle.Avatars, *bundle.ActiveAvatarId); ok {
			return view
		}
	}

	return glyphView(username)
}

func findAvatar(avatars []model.Avatar, avatarId uuid.UUID) (model.AvatarView, bool) {
	for _, a := range avatars {
		if a.Id == avatarId && a.DataUrl != "" {
			return model.AvatarView{DataUrl: a.DataUrl}, true
		}
	}
	return model.AvatarView{}, false
}

// Glyph is the synchronous default: the uppercased first character of the
// username ("?" when absent) on a deterministically chosen color.
func Glyph(username string) model.AvatarGlyph {
	return model.AvatarGlyph{
		Label: glyphLabel(username),
		Color: paletteColor(username),
	}
}

func glyphView(username string) model.AvatarView {
	glyph := Glyph(username)
	return model.AvatarView{Glyph: &glyph}
}
