package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/pricing"
)

type priceGroupRow struct {
	ID        string          `db:"id"`
	TenantID  string          `db:"tenant_id"`
	Name      string          `db:"name"`
	BasePrice decimal.Decimal `db:"base_price"`
	Priority  int             `db:"priority"`
	IsDefault bool            `db:"is_default"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

type priceRangeRow struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	GroupID   string    `db:"group_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	CreatedAt time.Time `db:"created_at"`

	GroupName      string          `db:"group_name"`
	GroupPrice     decimal.Decimal `db:"group_price"`
	GroupPriority  int             `db:"group_priority"`
	GroupIsDefault bool            `db:"group_is_default"`
	GroupCreatedAt time.Time       `db:"group_created_at"`
}

type PricingRepository struct{ db *sqlx.DB }

func NewPricingRepository(db *sqlx.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) CreateGroup(ctx context.Context, g *pricing.PriceGroup) error {
	query := `INSERT INTO price_groups (tenant_id, name, base_price, priority, is_default, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, g.TenantID, g.Name, g.BasePrice, g.Priority, g.IsDefault, g.CreatedAt, g.UpdatedAt).Scan(&g.ID); err != nil {
		// デフォルトグループはテナントごとに1件（部分一意インデックスで保証）
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return pricing.ErrDefaultGroupExists
		}
		return fmt.Errorf("料金グループ作成に失敗: %w", err)
	}
	return nil
}

func (r *PricingRepository) GetGroupByID(ctx context.Context, id string) (*pricing.PriceGroup, error) {
	var row priceGroupRow
	query := `SELECT id, tenant_id, name, base_price, priority, is_default, created_at, updated_at FROM price_groups WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pricing.ErrPriceGroupNotFound
		}
		return nil, fmt.Errorf("料金グループ取得に失敗: %w", err)
	}
	return r.groupToEntity(&row), nil
}

func (r *PricingRepository) ListGroups(ctx context.Context, tenantID string) ([]*pricing.PriceGroup, error) {
	var rows []priceGroupRow
	query := `SELECT id, tenant_id, name, base_price, priority, is_default, created_at, updated_at FROM price_groups WHERE tenant_id = $1 ORDER BY priority DESC, name`
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("料金グループ一覧取得に失敗: %w", err)
	}
	result := make([]*pricing.PriceGroup, len(rows))
	for i, row := range rows {
		result[i] = r.groupToEntity(&row)
	}
	return result, nil
}

func (r *PricingRepository) GetDefaultGroup(ctx context.Context, tenantID string) (*pricing.PriceGroup, error) {
	var row priceGroupRow
	query := `SELECT id, tenant_id, name, base_price, priority, is_default, created_at, updated_at FROM price_groups WHERE tenant_id = $1 AND is_default = TRUE`
	if err := r.db.GetContext(ctx, &row, query, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pricing.ErrDefaultGroupNotFound
		}
		return nil, fmt.Errorf("デフォルト料金グループ取得に失敗: %w", err)
	}
	return r.groupToEntity(&row), nil
}

func (r *PricingRepository) CreateRange(ctx context.Context, pr *pricing.PriceRange) error {
	query := `INSERT INTO price_ranges (tenant_id, group_id, start_date, end_date, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, pr.TenantID, pr.GroupID, pr.StartDate, pr.EndDate, pr.CreatedAt).Scan(&pr.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" {
			return pricing.ErrPriceGroupNotFound
		}
		return fmt.Errorf("料金期間作成に失敗: %w", err)
	}
	return nil
}

const priceRangeSelect = `SELECT r.id, r.tenant_id, r.group_id, r.start_date, r.end_date, r.created_at,
	g.name AS group_name, g.base_price AS group_price, g.priority AS group_priority,
	g.is_default AS group_is_default, g.created_at AS group_created_at
	FROM price_ranges r JOIN price_groups g ON g.id = r.group_id`

func (r *PricingRepository) ListRanges(ctx context.Context, tenantID string) ([]*pricing.PriceRange, error) {
	var rows []priceRangeRow
	query := priceRangeSelect + ` WHERE r.tenant_id = $1 ORDER BY r.start_date`
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("料金期間一覧取得に失敗: %w", err)
	}
	return r.rangesToEntities(rows), nil
}

func (r *PricingRepository) FindOverlappingRanges(ctx context.Context, tenantID string, from, to time.Time) ([]*pricing.PriceRange, error) {
	var rows []priceRangeRow
	// start_date / end_date は両端含む閉区間
	query := priceRangeSelect + ` WHERE r.tenant_id = $1 AND r.start_date <= $3 AND r.end_date >= $2 ORDER BY r.start_date`
	if err := r.db.SelectContext(ctx, &rows, query, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("料金期間検索に失敗: %w", err)
	}
	return r.rangesToEntities(rows), nil
}

func (r *PricingRepository) rangesToEntities(rows []priceRangeRow) []*pricing.PriceRange {
	result := make([]*pricing.PriceRange, len(rows))
	for i, row := range rows {
		result[i] = &pricing.PriceRange{
			ID: row.ID, TenantID: row.TenantID, GroupID: row.GroupID,
			StartDate: row.StartDate.UTC(), EndDate: row.EndDate.UTC(), CreatedAt: row.CreatedAt,
			Group: &pricing.PriceGroup{
				ID: row.GroupID, TenantID: row.TenantID, Name: row.GroupName,
				BasePrice: row.GroupPrice, Priority: row.GroupPriority,
				IsDefault: row.GroupIsDefault, CreatedAt: row.GroupCreatedAt,
			},
		}
	}
	return result
}

func (r *PricingRepository) groupToEntity(row *priceGroupRow) *pricing.PriceGroup {
	return &pricing.PriceGroup{
		ID: row.ID, TenantID: row.TenantID, Name: row.Name,
		BasePrice: row.BasePrice, Priority: row.Priority, IsDefault: row.IsDefault,
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

var _ pricing.Repository = (*PricingRepository)(nil)
