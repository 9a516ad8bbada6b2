package cabin

import "context"

// Repository はキャビンリポジトリのインターフェース
type Repository interface {
	// Create は新しいキャビンを作成する
	Create(ctx context.Context, c *Cabin) error

	// GetByID はIDからキャビンを取得する
	GetByID(ctx context.Context, id string) (*Cabin, error)

	// ListActive はテナントの予約受付中キャビン一覧を取得する
	ListActive(ctx context.Context, tenantID string) ([]*Cabin, error)

	// List はテナントの全キャビン一覧を取得する
	List(ctx context.Context, tenantID string) ([]*Cabin, error)

	// Update はキャビンを更新する
	Update(ctx context.Context, c *Cabin) error
}
