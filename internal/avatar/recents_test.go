package avatar

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/model"
)

type memoryKV struct {
	data   map[string]string
	getErr error
	setErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.data[key], nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func seed(kv *memoryKV, userId uuid.UUID, payload string) {
	kv.data[recentsKeyName+":"+userId.String()] = payload
}

func TestRecentsGetEmpty(t *testing.T) {
	recents := NewRecents(newMemoryKV(), zap.NewNop())

	got := recents.Get(context.Background(), uuid.New())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecentsGetStoredList(t *testing.T) {
	kv := newMemoryKV()
	userId := uuid.New()
	seed(kv, userId, `["id1","id2"]`)

	recents := NewRecents(kv, zap.NewNop())
	assert.Equal(t, []string{"id1", "id2"}, recents.Get(context.Background(), userId))
}

func TestRecentsGetFiltersEmptyEntries(t *testing.T) {
	kv := newMemoryKV()
	userId := uuid.New()
	seed(kv, userId, `["id1","","id2"]`)

	recents := NewRecents(kv, zap.NewNop())
	assert.Equal(t, []string{"id1", "id2"}, recents.Get(context.Background(), userId))
}

func TestRecentsGetCorruptedPayload(t *testing.T) {
	for _, payload := range []string{"not valid json", `{"foo":"bar"}`, `42`} {
		kv := newMemoryKV()
		userId := uuid.New()
		seed(kv, userId, payload)

		recents := NewRecents(kv, zap.NewNop())
		assert.Empty(t, recents.Get(context.Background(), userId), "payload=%q", payload)
	}
}

func TestRecentsGetReadFailure(t *testing.T) {
	kv := newMemoryKV()
	kv.getErr = errors.New("store down")

	recents := NewRecents(kv, zap.NewNop())
	assert.Empty(t, recents.Get(context.Background(), uuid.New()))
}

func TestRecentsSaveNew(t *testing.T) {
	kv := newMemoryKV()
	userId := uuid.New()
	recents := NewRecents(kv, zap.NewNop())

	got := recents.Save(context.Background(), userId, "newId")
	assert.Equal(t, []string{"newId"}, got)

	// Persisted, not just returned.
	assert.Equal(t, []string{"newId"}, recents.Get(context.Background(), userId))
}

func TestRecentsSaveMovesExistingToFront(t *testing.T) {
	kv := newMemoryKV()
	userId := uuid.New()
	seed(kv, userId, `["id1","id2","id3"]`)

	recents := NewRecents(kv, zap.NewNop())
	got := recents.Save(context.Background(), userId, "id2")
	assert.Equal(t, []string{"id2", "id1", "id3"}, got)
}

func TestRecentsSaveEvictsOldest(t *testing.T) {
	kv := newMemoryKV()
	userId := uuid.New()
	seed(kv, userId, `["1","2","3","4","5","6"]`)

	recents := NewRecents(kv, zap.NewNop())
	got := recents.Save(context.Background(), userId, "new")

	require.Len(t, got, maxRecents)
	assert.Equal(t, "new", got[0])
	assert.NotContains(t, got, "6")
}

func TestRecentsSaveEmptyIdReturnsCurrent(t *testing.T) {
	kv := newMemoryKV()
	userId := uuid.New()
	seed(kv, userId, `["id1"]`)

	recents := NewRecents(kv, zap.NewNop())
	assert.Equal(t, []string{"id1"}, recents.Save(context.Background(), userId, ""))
}

func TestRecentsSaveWriteFailureStillReturnsList(t *testing.T) {
	kv := newMemoryKV()
	kv.setErr = errors.New("store down")
	recents := NewRecents(kv, zap.NewNop())

	got := recents.Save(context.Background(), uuid.New(), "id1")
	assert.Equal(t, []string{"id1"}, got)
}

func TestRecentsKeysScopedPerUser(t *testing.T) {
	kv := newMemoryKV()
	recents := NewRecents(kv, zap.NewNop())
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	recents.Save(ctx, alice, "a1")
	recents.Save(ctx, bob, "b1")

	assert.Equal(t, []string{"a1"}, recents.Get(ctx, alice))
	assert.Equal(t, []string{"b1"}, recents.Get(ctx, bob))
}

func TestResolveRecents(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	avatars := make([]model.Avatar, 0, len(ids))
	for i, id := range ids {
		avatars = append(avatars, model.Avatar{Id: id, DataUrl: fmt.Sprintf("data:%d", i)})
	}

	// Matching ids resolve in the order given.
	got := ResolveRecents([]string{ids[1].String(), ids[0].String()}, avatars)
	require.Len(t, got, 2)
	assert.Equal(t, ids[1], got[0].Id)
	assert.Equal(t, ids[0], got[1].Id)

	// Unknown ids are dropped silently.
	got = ResolveRecents([]string{ids[0].String(), uuid.New().String(), ids[2].String()}, avatars)
	require.Len(t, got, 2)
	assert.Equal(t, ids[0], got[0].Id)
	assert.Equal(t, ids[2], got[1].Id)

	// Degenerate inputs resolve to empty, never nil panics.
	assert.Empty(t, ResolveRecents(nil, avatars))
	assert.Empty(t, ResolveRecents([]string{ids[0].String()}, nil))
}
