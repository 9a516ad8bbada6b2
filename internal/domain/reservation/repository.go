package reservation

import (
	"context"
	"time"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
//
// 永続化層への契約: Create / Update のうち占有集合を変更する操作は、
// FindOverlapping による確認と同一トランザクション内で read-committed
// 以上の分離レベルとキャビン単位の直列化（SELECT ... FOR UPDATE 相当、
// または排他制約）の下で実行されること。確認と書き込みの間に同一
// キャビン・重複期間の予約が成立してはならない。
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, r *Reservation) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Reservation, error)

	// ListByClient はクライアントの予約一覧を取得する
	ListByClient(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*Reservation, error)

	// FindOverlapping はキャビンの半開区間 [from, to) に掛かる予約を
	// チェックイン日の昇順で取得する（テナント絞り込み済みスナップショット）
	// 占有判定（状態・期限）は呼び出し側が行う
	FindOverlapping(ctx context.Context, cabinID string, from, to time.Time) ([]*Reservation, error)

	// Update は予約を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, r *Reservation) error

	// FindExpiredPending は now 時点で期限切れの未確定予約を取得する
	FindExpiredPending(ctx context.Context, now time.Time) ([]*Reservation, error)

	// CreatePayment は支払い記録を作成する（トランザクション必須）
	CreatePayment(ctx context.Context, tx transaction.Tx, p *Payment) error

	// GetPayments は予約の支払い記録一覧を取得する
	GetPayments(ctx context.Context, reservationID string) ([]*Payment, error)
}
