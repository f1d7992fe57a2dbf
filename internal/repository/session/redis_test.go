package session

import (
	"context"
	"testing"
	"time"

	"agrimarket-cart/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, ttl, nil), mr
}

func TestRedis_LoadMissing(t *testing.T) {
	repo, _ := setupTestRedis(t, time.Hour)

	_, err := repo.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedis_SaveAndLoad(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", []byte(`{"version":1,"items":[]}`)))

	stored, err := mr.Get("cart:session:s1")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"items":[]}`, stored)
	assert.Equal(t, time.Hour, mr.TTL("cart:session:s1"))

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"items":[]}`, string(got))
}

func TestRedis_SaveWithoutTTL(t *testing.T) {
	repo, mr := setupTestRedis(t, 0)

	require.NoError(t, repo.Save(context.Background(), "s1", []byte(`{}`)))
	assert.Equal(t, time.Duration(0), mr.TTL("cart:session:s1"))
}

func TestRedis_ExpiredSessionIsNotFound(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", []byte(`{}`)))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedis_Delete(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", []byte(`{}`)))
	require.NoError(t, repo.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("cart:session:s1"))
	assert.NoError(t, repo.Delete(ctx, "never-saved"))
}

func TestRedis_ServerDown(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Hour)
	mr.Close()

	_, err := repo.Load(context.Background(), "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Error(t, repo.Ping(context.Background()))
}
