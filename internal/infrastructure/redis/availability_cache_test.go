package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/config"
)

func TestAvailabilityCache(t *testing.T) {
	client := NewClient(&config.RedisConfig{Host: "localhost", Port: "6379"})
	ctx := context.Background()
	pingCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := Ping(pingCtx, client); err != nil {
		t.Skip("Redis not available")
	}
	defer client.Close()

	cache := NewAvailabilityCache(client)
	checkIn := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("未保存のキーはキャッシュミス", func(t *testing.T) {
		_, err := cache.GetAvailableCabins(ctx, "tenant-miss", checkIn, checkOut)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("保存した一覧を取得できる", func(t *testing.T) {
		ids := []string{"cabin-1", "cabin-2"}
		require.NoError(t, cache.SetAvailableCabins(ctx, "tenant-1", checkIn, checkOut, ids, 30*time.Second))

		got, err := cache.GetAvailableCabins(ctx, "tenant-1", checkIn, checkOut)
		require.NoError(t, err)
		assert.Equal(t, ids, got)
	})

	t.Run("期間が異なればキーも異なる", func(t *testing.T) {
		require.NoError(t, cache.SetAvailableCabins(ctx, "tenant-2", checkIn, checkOut, []string{"cabin-1"}, 30*time.Second))

		_, err := cache.GetAvailableCabins(ctx, "tenant-2", checkIn, checkOut.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("無効化後はキャッシュミス", func(t *testing.T) {
		require.NoError(t, cache.SetAvailableCabins(ctx, "tenant-3", checkIn, checkOut, []string{"cabin-1"}, 30*time.Second))
		require.NoError(t, cache.Invalidate(ctx, "tenant-3", checkIn, checkOut))

		_, err := cache.GetAvailableCabins(ctx, "tenant-3", checkIn, checkOut)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
