package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisOptions{
		Address: mr.Addr(),
		TTL:     time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	sess, err := store.Init(ctx, "abc", "sam")
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.ID)
	assert.Equal(t, "sam", sess.Nickname)

	require.NoError(t, store.Put(ctx, "abc", Answer{QuestionID: "q1", OptionID: "q1a"}))
	require.NoError(t, store.Put(ctx, "abc", Answer{QuestionID: "q2", OptionID: "q2d"}))

	got, err := store.Answers(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []Answer{
		{QuestionID: "q1", OptionID: "q1a"},
		{QuestionID: "q2", OptionID: "q2d"},
	}, got)
}

func TestRedisStoreLastWriteWins(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Init(ctx, "abc", "")
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "abc", Answer{QuestionID: "q1", OptionID: "q1a"}))
	require.NoError(t, store.Put(ctx, "abc", Answer{QuestionID: "q1", OptionID: "q1b"}))

	got, err := store.Answers(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "q1b", got[0].OptionID)
}

func TestRedisStoreUnknownSession(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Put(ctx, "missing", Answer{QuestionID: "q1", OptionID: "q1a"})
	assert.ErrorIs(t, err, ErrNotFound)

	answers, err := store.Answers(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestRedisStoreDelete(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Init(ctx, "abc", "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "abc"))

	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
