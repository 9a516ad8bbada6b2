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

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/reservation"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/transaction"
)

type reservationRow struct {
	ID           string          `db:"id"`
	TenantID     string          `db:"tenant_id"`
	CabinID      string          `db:"cabin_id"`
	ClientID     string          `db:"client_id"`
	CheckIn      time.Time       `db:"check_in"`
	CheckOut     time.Time       `db:"check_out"`
	Status       string          `db:"status"`
	PendingUntil *time.Time      `db:"pending_until"`
	Total        decimal.Decimal `db:"total"`
	Deposit      decimal.Decimal `db:"deposit"`
	Balance      decimal.Decimal `db:"balance"`
	Notes        string          `db:"notes"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

type paymentRow struct {
	ID            string          `db:"id"`
	ReservationID string          `db:"reservation_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	Method        *string         `db:"method"`
	PaidAt        time.Time       `db:"paid_at"`
}

const reservationSelect = `SELECT id, tenant_id, cabin_id, client_id, check_in, check_out, status, pending_until, total, deposit, balance, notes, created_at, updated_at FROM reservations`

type ReservationRepository struct{ db *sqlx.DB }

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	query := `INSERT INTO reservations (tenant_id, cabin_id, client_id, check_in, check_out, status, pending_until, total, deposit, balance, notes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	sqlxTx := UnwrapTx(tx)
	if err := sqlxTx.QueryRowContext(ctx, query, res.TenantID, res.CabinID, res.ClientID, res.CheckIn, res.CheckOut, string(res.Status), res.PendingUntil, res.Total, res.Deposit, res.Balance, res.Notes, res.CreatedAt, res.UpdatedAt).Scan(&res.ID); err != nil {
		// 排他制約（同一キャビン・重複期間の占有予約）に抵触した場合
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23P01" {
			return reservation.ErrOverlapConflict
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	var row reservationRow
	if err := r.db.GetContext(ctx, &row, reservationSelect+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return r.toEntity(&row), nil
}

func (r *ReservationRepository) ListByClient(ctx context.Context, tenantID, clientID string, limit, offset int) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := reservationSelect + ` WHERE tenant_id = $1 AND client_id = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	if err := r.db.SelectContext(ctx, &rows, query, tenantID, clientID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, cabinID string, from, to time.Time) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	// 半開区間 [check_in, check_out) の重なり判定
	query := reservationSelect + ` WHERE cabin_id = $1 AND check_in < $3 AND check_out > $2 ORDER BY check_in`
	if err := r.db.SelectContext(ctx, &rows, query, cabinID, from, to); err != nil {
		return nil, fmt.Errorf("重複予約検索に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	query := `UPDATE reservations SET cabin_id = $1, check_in = $2, check_out = $3, status = $4, pending_until = $5, total = $6, deposit = $7, balance = $8, notes = $9, updated_at = $10 WHERE id = $11`
	sqlxTx := UnwrapTx(tx)
	result, err := sqlxTx.ExecContext(ctx, query, res.CabinID, res.CheckIn, res.CheckOut, string(res.Status), res.PendingUntil, res.Total, res.Deposit, res.Balance, res.Notes, res.UpdatedAt, res.ID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23P01" {
			return reservation.ErrOverlapConflict
		}
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) FindExpiredPending(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := reservationSelect + ` WHERE status = 'pending_confirmation' AND pending_until IS NOT NULL AND pending_until <= $1`
	if err := r.db.SelectContext(ctx, &rows, query, now); err != nil {
		return nil, fmt.Errorf("期限切れ予約取得に失敗: %w", err)
	}
	return r.toEntities(rows), nil
}

func (r *ReservationRepository) CreatePayment(ctx context.Context, tx transaction.Tx, p *reservation.Payment) error {
	query := `INSERT INTO reservation_payments (reservation_id, amount, type, method, paid_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	sqlxTx := UnwrapTx(tx)
	if err := sqlxTx.QueryRowContext(ctx, query, p.ReservationID, p.Amount, string(p.Type), p.Method, p.PaidAt).Scan(&p.ID); err != nil {
		// 予約ごとに各種別の支払いは1件（一意制約で保証）
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			if p.Type == reservation.PaymentDeposit {
				return reservation.ErrDepositAlreadyPaid
			}
			return reservation.ErrBalanceAlreadyPaid
		}
		return fmt.Errorf("支払い記録作成に失敗: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetPayments(ctx context.Context, reservationID string) ([]*reservation.Payment, error) {
	var rows []paymentRow
	query := `SELECT id, reservation_id, amount, type, method, paid_at FROM reservation_payments WHERE reservation_id = $1 ORDER BY paid_at`
	if err := r.db.SelectContext(ctx, &rows, query, reservationID); err != nil {
		return nil, fmt.Errorf("支払い記録取得に失敗: %w", err)
	}
	result := make([]*reservation.Payment, len(rows))
	for i, row := range rows {
		result[i] = &reservation.Payment{
			ID: row.ID, ReservationID: row.ReservationID, Amount: row.Amount,
			Type: reservation.PaymentType(row.Type), Method: row.Method, PaidAt: row.PaidAt,
		}
	}
	return result, nil
}

func (r *ReservationRepository) toEntities(rows []reservationRow) []*reservation.Reservation {
	result := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		result[i] = r.toEntity(&row)
	}
	return result
}

func (r *ReservationRepository) toEntity(row *reservationRow) *reservation.Reservation {
	return &reservation.Reservation{
		ID: row.ID, TenantID: row.TenantID, CabinID: row.CabinID, ClientID: row.ClientID,
		CheckIn: row.CheckIn.UTC(), CheckOut: row.CheckOut.UTC(),
		Status: reservation.Status(row.Status), PendingUntil: row.PendingUntil,
		Total: row.Total, Deposit: row.Deposit, Balance: row.Balance,
		Notes: row.Notes, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
}

var _ reservation.Repository = (*ReservationRepository)(nil)
