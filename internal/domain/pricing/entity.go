package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
)

// PriceGroup は料金グループ（1泊あたりの基本料金と優先度）を表す
// IsDefault のグループはどの料金期間にも該当しない日のフォールバックとなる
// （テナントごとに最大1件。一意性は永続化層で保証される）
type PriceGroup struct {
	ID        string
	TenantID  string
	Name      string
	BasePrice decimal.Decimal
	Priority  int
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPriceGroup は新しい料金グループを作成する
func NewPriceGroup(tenantID, name string, basePrice decimal.Decimal, priority int, isDefault bool) *PriceGroup {
	now := time.Now()
	return &PriceGroup{
		TenantID:  tenantID,
		Name:      name,
		BasePrice: basePrice,
		Priority:  priority,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は料金グループの検証を行う
func (g *PriceGroup) Validate() error {
	if g.TenantID == "" {
		return ErrTenantIDRequired
	}
	if g.Name == "" {
		return ErrGroupNameRequired
	}
	if g.BasePrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// PriceRange は「この料金グループの価格がこの暦日に適用される」期間を表す
// StartDate / EndDate はどちらも含む閉区間（予約の半開区間とは異なる）
type PriceRange struct {
	ID        string
	TenantID  string
	GroupID   string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time

	// Group は所有グループ（リポジトリが結合して設定する）
	Group *PriceGroup
}

// NewPriceRange は新しい料金期間を作成する
func NewPriceRange(tenantID, groupID string, startDate, endDate time.Time) *PriceRange {
	return &PriceRange{
		TenantID:  tenantID,
		GroupID:   groupID,
		StartDate: dateinterval.Normalize(startDate),
		EndDate:   dateinterval.Normalize(endDate),
		CreatedAt: time.Now(),
	}
}

// Validate は料金期間の検証を行う
func (r *PriceRange) Validate() error {
	if r.TenantID == "" {
		return ErrTenantIDRequired
	}
	if r.GroupID == "" {
		return ErrGroupIDRequired
	}
	if r.EndDate.Before(r.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// Covers は指定の暦日がこの期間に含まれるかを返す（両端含む）
func (r *PriceRange) Covers(day time.Time) bool {
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}

// Beats はこの期間が other より優先されるかを返す
// 優先度の高いグループが勝ち、同値なら作成日時の新しい期間が勝つ
func (r *PriceRange) Beats(other *PriceRange) bool {
	if r.Group.Priority != other.Group.Priority {
		return r.Group.Priority > other.Group.Priority
	}
	return r.CreatedAt.After(other.CreatedAt)
}
