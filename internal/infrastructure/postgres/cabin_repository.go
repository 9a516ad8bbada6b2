package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/cabin"
)

type cabinRow struct {
	ID          string    `db:"id"`
	TenantID    string    `db:"tenant_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Capacity    int       `db:"capacity"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type CabinRepository struct{ db *sqlx.DB }

func NewCabinRepository(db *sqlx.DB) *CabinRepository {
	return &CabinRepository{db: db}
}

func (r *CabinRepository) Create(ctx context.Context, c *cabin.Cabin) error {
	query := `INSERT INTO cabins (tenant_id, name, description, capacity, active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.TenantID, c.Name, c.Description, c.Capacity, c.Active, c.CreatedAt, c.UpdatedAt).Scan(&c.ID); err != nil {
		return fmt.Errorf("キャビン作成に失敗: %w", err)
	}
	return nil
}

func (r *CabinRepository) GetByID(ctx context.Context, id string) (*cabin.Cabin, error) {
	var row cabinRow
	query := `SELECT id, tenant_id, name, description, capacity, active, created_at, updated_at FROM cabins WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cabin.ErrCabinNotFound
		}
		return nil, fmt.Errorf("キャビン取得に失敗: %w", err)
	}
	return r.toEntity(&row), nil
}

func (r *CabinRepository) ListActive(ctx context.Context, tenantID string) ([]*cabin.Cabin, error) {
	var rows []cabinRow
	query := `SELECT id, tenant_id, name, description, capacity, active, created_at, updated_at FROM cabins WHERE tenant_id = $1 AND active = TRUE ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("キャビン一覧取得に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *CabinRepository) List(ctx context.Context, tenantID string) ([]*cabin.Cabin, error) {
	var rows []cabinRow
	query := `SELECT id, tenant_id, name, description, capacity, active, created_at, updated_at FROM cabins WHERE tenant_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("キャビン一覧取得に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *CabinRepository) Update(ctx context.Context, c *cabin.Cabin) error {
	query := `UPDATE cabins SET name = $1, description = $2, capacity = $3, active = $4, updated_at = $5 WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.Capacity, c.Active, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("キャビン更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return cabin.ErrCabinNotFound
	}
	return nil
}

func (r *CabinRepository) toEntities(rows []cabinRow) []*cabin.Cabin {
	result := make([]*cabin.Cabin, len(rows))
	for i, row := range rows {
		result[i] = r.toEntity(&row)
	}
	return result
}

func (r *CabinRepository) toEntity(row *cabinRow) *cabin.Cabin {
	return &cabin.Cabin{
		ID: row.ID, TenantID: row.TenantID, Name: row.Name,
		Description: row.Description, Capacity: row.Capacity, Active: row.Active,
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

var _ cabin.Repository = (*CabinRepository)(nil)
