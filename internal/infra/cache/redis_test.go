package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	c, err := NewRedisCache("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("NewRedisCache failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "product_list", []byte(`[{"id":1}]`), 120*time.Second)
	assert.NoError(t, err)

	got, err := c.Get(ctx, "product_list")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), got)
}

func TestRedisCache_Get_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_Del(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "product_list", []byte("x"), time.Minute))
	assert.NoError(t, c.Del(ctx, "product_list"))

	got, err := c.Get(ctx, "product_list")
	assert.NoError(t, err)
	assert.Nil(t, got)

	// 存在しないキーのDelはエラーにならない
	assert.NoError(t, c.Del(ctx, "product_list"))
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "book_list", []byte("y"), 60*time.Second))

	// TTL経過をminiredis側で進める
	mr.FastForward(61 * time.Second)

	got, err := c.Get(ctx, "book_list")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
