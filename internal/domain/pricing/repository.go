package pricing

import (
	"context"
	"time"
)

// Repository は料金リポジトリのインターフェース
type Repository interface {
	// CreateGroup は新しい料金グループを作成する
	CreateGroup(ctx context.Context, g *PriceGroup) error

	// GetGroupByID はIDから料金グループを取得する
	GetGroupByID(ctx context.Context, id string) (*PriceGroup, error)

	// ListGroups はテナントの料金グループ一覧を取得する
	ListGroups(ctx context.Context, tenantID string) ([]*PriceGroup, error)

	// GetDefaultGroup はテナントのデフォルト料金グループを取得する
	// 未設定の場合は ErrDefaultGroupNotFound を返す
	GetDefaultGroup(ctx context.Context, tenantID string) (*PriceGroup, error)

	// CreateRange は新しい料金期間を作成する
	CreateRange(ctx context.Context, r *PriceRange) error

	// ListRanges はテナントの料金期間一覧を取得する（Group 結合済み）
	ListRanges(ctx context.Context, tenantID string) ([]*PriceRange, error)

	// FindOverlappingRanges は指定期間に掛かる料金期間を取得する（Group 結合済み）
	// from / to は両端含む暦日
	FindOverlappingRanges(ctx context.Context, tenantID string, from, to time.Time) ([]*PriceRange, error)
}
