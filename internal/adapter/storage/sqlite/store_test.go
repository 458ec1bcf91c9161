package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/insightreel/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createTestUser(t *testing.T, store *Store, username string) *domain.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), username, "hash")
	require.NoError(t, err)
	return user
}

func TestStore_SaveAndGetVideo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "alice")

	v := domain.NewVideo("Talk", "talk.mp4", "1/key-talk.mp4", user.ID)
	v.Words = []domain.WordTiming{{Word: "hi", StartSec: 0, EndSec: 1}}
	require.NoError(t, store.Save(ctx, v))

	got, err := store.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
	assert.Equal(t, "Talk", got.Title)
	assert.Equal(t, domain.VideoStatusProcessing, got.Status)
	assert.Equal(t, v.Words, got.Words)
	assert.Equal(t, user.ID, got.OwnerID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_GetVideo_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_GetOwned(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")

	v := domain.NewVideo("Talk", "talk.mp4", "key", alice.ID)
	require.NoError(t, store.Save(ctx, v))

	_, err := store.GetOwned(ctx, v.ID, alice.ID, false)
	assert.NoError(t, err)

	_, err = store.GetOwned(ctx, v.ID, bob.ID, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Admins see everything.
	_, err = store.GetOwned(ctx, v.ID, bob.ID, true)
	assert.NoError(t, err)
}

func TestStore_List_ScopedToOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")

	require.NoError(t, store.Save(ctx, domain.NewVideo("a", "a", "ka", alice.ID)))
	require.NoError(t, store.Save(ctx, domain.NewVideo("b", "b", "kb", bob.ID)))

	mine, err := store.List(ctx, alice.ID, false)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := store.List(ctx, alice.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_UpdateResult(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "alice")

	v := domain.NewVideo("Talk", "talk.mp4", "key", user.ID)
	require.NoError(t, store.Save(ctx, v))

	v.MarkCompleted("hello world", []domain.WordTiming{
		{Word: "hello", StartSec: 1, EndSec: 2},
		{Word: "world", StartSec: 2, EndSec: 3},
	})
	require.NoError(t, store.UpdateResult(ctx, v))

	got, err := store.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoStatusCompleted, got.Status)
	assert.Equal(t, "hello world", got.FullTranscript)
	assert.Len(t, got.Words, 2)
}

func TestStore_UpdateResult_Missing(t *testing.T) {
	store := newTestStore(t)

	v := domain.NewVideo("Talk", "talk.mp4", "key", 1)
	err := store.UpdateResult(context.Background(), v)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SearchCompleted(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")

	done := domain.NewVideo("Cooking", "c.mp4", "k1", alice.ID)
	require.NoError(t, store.Save(ctx, done))
	done.MarkCompleted("how to cook pasta carbonara", nil)
	require.NoError(t, store.UpdateResult(ctx, done))

	// Failed videos carry diagnostic text and must never match.
	failed := domain.NewVideo("Broken", "b.mp4", "k2", alice.ID)
	require.NoError(t, store.Save(ctx, failed))
	failed.MarkFailed("pasta download failed")
	require.NoError(t, store.UpdateResult(ctx, failed))

	other := domain.NewVideo("Other", "o.mp4", "k3", bob.ID)
	require.NoError(t, store.Save(ctx, other))
	other.MarkCompleted("pasta al forno for everyone", nil)
	require.NoError(t, store.UpdateResult(ctx, other))

	results, err := store.SearchCompleted(ctx, "pasta", alice.ID, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, done.ID, results[0].ID)

	all, err := store.SearchCompleted(ctx, "pasta", alice.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_SearchCompleted_QuerySyntaxIsLiteral(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "alice")

	v := domain.NewVideo("t", "f", "k", user.ID)
	require.NoError(t, store.Save(ctx, v))
	v.MarkCompleted("mixing audio with OR without effects", nil)
	require.NoError(t, store.UpdateResult(ctx, v))

	// FTS operators in user input must not be interpreted.
	results, err := store.SearchCompleted(ctx, `audio OR "effects`, user.ID, false)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStore_SearchCompleted_EmptyQuery(t *testing.T) {
	store := newTestStore(t)

	results, err := store.SearchCompleted(context.Background(), "   ", 1, false)
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestStore_DeleteVideo_RemovesIndex(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "alice")

	v := domain.NewVideo("t", "f", "k", user.ID)
	require.NoError(t, store.Save(ctx, v))
	v.MarkCompleted("findable transcript", nil)
	require.NoError(t, store.UpdateResult(ctx, v))

	require.NoError(t, store.Delete(ctx, v.ID))

	_, err := store.Get(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	results, err := store.SearchCompleted(ctx, "findable", user.ID, false)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, store, "alice")
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.True(t, created.TranscriptionEnabled)

	byName, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := store.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = store.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_CreateUser_DuplicateUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "alice", "h1")
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, "alice", "h2")
	assert.Error(t, err)
}

func TestStore_SetTranscriptionEnabled(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "alice")

	require.NoError(t, store.SetTranscriptionEnabled(ctx, user.ID, false))

	got, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.TranscriptionEnabled)

	assert.ErrorIs(t, store.SetTranscriptionEnabled(ctx, 9999, true), domain.ErrNotFound)
}

func TestStore_Settings_FindOrCreateDefaultsEnabled(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	setting, err := store.FindOrCreate(ctx, domain.SettingGlobalTranscription)
	require.NoError(t, err)
	assert.True(t, setting.IsEnabled)

	// Second read returns the persisted row, not a fresh default.
	_, err = store.Update(ctx, domain.SettingGlobalTranscription, false)
	require.NoError(t, err)

	setting, err = store.FindOrCreate(ctx, domain.SettingGlobalTranscription)
	require.NoError(t, err)
	assert.False(t, setting.IsEnabled)
}
