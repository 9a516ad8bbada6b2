package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// AvailabilityCache は空きキャビン一覧のキャッシュを管理する
// 一覧表示用の短命キャッシュであり、予約作成時の空き確認は
// 常にデータベースを参照する
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache は新しいAvailabilityCacheインスタンスを作成する
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// GetAvailableCabins は指定期間の空きキャビンID一覧をキャッシュから取得する
func (c *AvailabilityCache) GetAvailableCabins(ctx context.Context, tenantID string, checkIn, checkOut time.Time) ([]string, error) {
	key := c.availableCabinsKey(tenantID, checkIn, checkOut)
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	return ids, nil
}

// SetAvailableCabins は指定期間の空きキャビンID一覧をキャッシュに保存する
func (c *AvailabilityCache) SetAvailableCabins(ctx context.Context, tenantID string, checkIn, checkOut time.Time, cabinIDs []string, ttl time.Duration) error {
	key := c.availableCabinsKey(tenantID, checkIn, checkOut)
	data, err := json.Marshal(cabinIDs)
	if err != nil {
		return fmt.Errorf("キャッシュの変換に失敗: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は指定期間のキャッシュを無効化する
func (c *AvailabilityCache) Invalidate(ctx context.Context, tenantID string, checkIn, checkOut time.Time) error {
	key := c.availableCabinsKey(tenantID, checkIn, checkOut)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) availableCabinsKey(tenantID string, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("availability:%s:%s:%s",
		tenantID,
		checkIn.Format(dateinterval.DateFormat),
		checkOut.Format(dateinterval.DateFormat),
	)
}
