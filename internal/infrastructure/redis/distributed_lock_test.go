package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/config"
)

func TestLockManager_AcquireLock(t *testing.T) {
	client := NewClient(&config.RedisConfig{Host: "localhost", Port: "6379"})
	ctx := context.Background()
	pingCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := Ping(pingCtx, client); err != nil {
		t.Skip("Redis not available")
	}
	defer client.Close()

	manager := NewLockManager(client)

	t.Run("ロックを取得できる", func(t *testing.T) {
		lock, err := manager.AcquireLock(ctx, CabinLockKey("cabin-1"), 5*time.Second)
		require.NoError(t, err)
		require.NotNil(t, lock)
		defer lock.Release(ctx)
	})

	t.Run("同じキャビンのロックは取得できない", func(t *testing.T) {
		lock1, err := manager.AcquireLock(ctx, CabinLockKey("cabin-2"), 5*time.Second)
		require.NoError(t, err)
		defer lock1.Release(ctx)

		lock2, err := manager.AcquireLock(ctx, CabinLockKey("cabin-2"), 5*time.Second)
		assert.ErrorIs(t, err, ErrLockNotAcquired)
		assert.Nil(t, lock2)
	})

	t.Run("解放後は再取得できる", func(t *testing.T) {
		lock1, err := manager.AcquireLock(ctx, CabinLockKey("cabin-3"), 5*time.Second)
		require.NoError(t, err)

		require.NoError(t, lock1.Release(ctx))

		lock2, err := manager.AcquireLock(ctx, CabinLockKey("cabin-3"), 5*time.Second)
		require.NoError(t, err)
		defer lock2.Release(ctx)
	})

	t.Run("リトライで取得できる", func(t *testing.T) {
		lock1, err := manager.AcquireLock(ctx, CabinLockKey("cabin-4"), 500*time.Millisecond)
		require.NoError(t, err)

		go func() {
			time.Sleep(300 * time.Millisecond)
			lock1.Release(ctx)
		}()

		lock2, err := manager.AcquireLockWithRetry(ctx, CabinLockKey("cabin-4"), 5*time.Second, 5, 100*time.Millisecond)
		require.NoError(t, err)
		defer lock2.Release(ctx)
	})

	t.Run("ロックを延長できる", func(t *testing.T) {
		lock, err := manager.AcquireLock(ctx, CabinLockKey("cabin-5"), 1*time.Second)
		require.NoError(t, err)
		defer lock.Release(ctx)

		require.NoError(t, lock.Extend(ctx, 5*time.Second))

		lock2, err := manager.AcquireLock(ctx, CabinLockKey("cabin-5"), 1*time.Second)
		assert.ErrorIs(t, err, ErrLockNotAcquired)
		assert.Nil(t, lock2)
	})
}

func TestCabinLockKey(t *testing.T) {
	assert.Equal(t, "cabin:abc", CabinLockKey("abc"))
}
