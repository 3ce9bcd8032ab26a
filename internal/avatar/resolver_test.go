package avatar

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/model"
)

type fakeBundleSource struct {
	bundle  model.AvatarBundle
	err     error
	fetches int
}

func (f *fakeBundleSource) FetchUserAvatarBundle(ctx context.Context, userId uuid.UUID) (model.AvatarBundle, error) {
	f.fetches++
	return f.bundle, f.err
}

func TestResolveWithoutUserIdSkipsFetch(t *testing.T) {
	source := &fakeBundleSource{}
	resolver := NewResolver(source, zap.NewNop())

	view := resolver.Resolve(context.Background(), nil, nil, "alice")

	assert.Zero(t, source.fetches)
	require.NotNil(t, view.Glyph)
	assert.Equal(t, "A", view.Glyph.Label)
	assert.Empty(t, view.DataUrl)
}

func TestResolveExplicitAvatarId(t *testing.T) {
	userId := uuid.New()
	wanted := uuid.New()
	active := uuid.New()

	source := &fakeBundleSource{
		bundle: model.AvatarBundle{
			Avatars: []model.Avatar{
				{Id: active, DataUrl: "data:active"},
				{Id: wanted, DataUrl: "data:explicit"},
			},
			ActiveAvatarId: &active,
		},
	}
	resolver := NewResolver(source, zap.NewNop())

	view := resolver.Resolve(context.Background(), &userId, &wanted, "alice")

	assert.Equal(t, "data:explicit", view.DataUrl)
	assert.Nil(t, view.Glyph)
}

func TestResolveFallsBackToActiveAvatar(t *testing.T) {
	userId := uuid.New()
	active := uuid.New()
	missing := uuid.New()

	source := &fakeBundleSource{
		bundle: model.AvatarBundle{
			Avatars:        []model.Avatar{{Id: active, DataUrl: "data:active"}},
			ActiveAvatarId: &active,
		},
	}
	resolver := NewResolver(source, zap.NewNop())

	// Explicit id does not resolve, so the active avatar wins.
	view := resolver.Resolve(context.Background(), &userId, &missing, "alice")
	assert.Equal(t, "data:active", view.DataUrl)

	// No explicit id at all behaves the same.
	view = resolver.Resolve(context.Background(), &userId, nil, "alice")
	assert.Equal(t, "data:active", view.DataUrl)
}

func TestResolveGlyphWhenNoUsableAvatar(t *testing.T) {
	userId := uuid.New()
	active := uuid.New()

	source := &fakeBundleSource{
		bundle: model.AvatarBundle{
			// Active avatar exists but has no embeddable data.
			Avatars:        []model.Avatar{{Id: active, DataUrl: ""}},
			ActiveAvatarId: &active,
		},
	}
	resolver := NewResolver(source, zap.NewNop())

	view := resolver.Resolve(context.Background(), &userId, nil, "bob")
	require.NotNil(t, view.Glyph)
	assert.Equal(t, "B", view.Glyph.Label)
}

func TestResolveFetchFailureDegradesToGlyph(t *testing.T) {
	userId := uuid.New()
	source := &fakeBundleSource{err: errors.New("connection refused")}
	resolver := NewResolver(source, zap.NewNop())

	view := resolver.Resolve(context.Background(), &userId, nil, "carol")

	require.NotNil(t, view.Glyph)
	assert.Equal(t, "C", view.Glyph.Label)
	assert.Equal(t, 1, source.fetches)
}

func TestResolveEmptyUsernameGlyph(t *testing.T) {
	resolver := NewResolver(&fakeBundleSource{}, zap.NewNop())

	view := resolver.Resolve(context.Background(), nil, nil, "")
	require.NotNil(t, view.Glyph)
	assert.Equal(t, "?", view.Glyph.Label)
}
