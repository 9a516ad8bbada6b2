package reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/pricing"
)

// Status は予約の状態を表す
type Status string

const (
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
	StatusCheckedIn           Status = "checked_in"
	StatusFinished            Status = "finished"
	StatusCancelled           Status = "cancelled"
)

// DefaultPendingTTL は未確定予約の有効期限（デフォルト48時間）
const DefaultPendingTTL = 48 * time.Hour

// Reservation は予約エンティティを表す
// CheckIn / CheckOut は半開区間 [CheckIn, CheckOut) の暦日であり、
// CheckOut 当日は滞在に含まれない
type Reservation struct {
	ID           string
	TenantID     string
	CabinID      string
	ClientID     string
	CheckIn      time.Time
	CheckOut     time.Time
	Status       Status
	PendingUntil *time.Time
	Total        decimal.Decimal
	Deposit      decimal.Decimal
	Balance      decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewReservation は新しい予約を pending_confirmation 状態で作成する
func NewReservation(tenantID, cabinID, clientID string, checkIn, checkOut time.Time, quote *pricing.Quote, pendingTTL time.Duration, now time.Time) *Reservation {
	if pendingTTL <= 0 {
		pendingTTL = DefaultPendingTTL
	}
	pendingUntil := now.Add(pendingTTL)
	return &Reservation{
		TenantID:     tenantID,
		CabinID:      cabinID,
		ClientID:     clientID,
		CheckIn:      dateinterval.Normalize(checkIn),
		CheckOut:     dateinterval.Normalize(checkOut),
		Status:       StatusPendingConfirmation,
		PendingUntil: &pendingUntil,
		Total:        quote.Total,
		Deposit:      quote.Deposit,
		Balance:      quote.Balance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate は予約の検証を行う
func (r *Reservation) Validate() error {
	if r.TenantID == "" {
		return ErrTenantIDRequired
	}
	if r.CabinID == "" {
		return ErrCabinIDRequired
	}
	if r.ClientID == "" {
		return ErrClientIDRequired
	}
	if !r.CheckOut.After(r.CheckIn) {
		return ErrInvalidDateRange
	}
	return nil
}

// IsPendingExpiredAt は未確定予約の期限が now 時点で切れているかを返す
func (r *Reservation) IsPendingExpiredAt(now time.Time) bool {
	return r.Status == StatusPendingConfirmation &&
		r.PendingUntil != nil && !r.PendingUntil.After(now)
}

// IsBlockingAt は now 時点でこの予約がキャビンを占有するかを返す
// 期限切れの未確定予約は、状態が変更されていなくても空き判定上は
// キャンセル済みとして扱う（期限は参照時に遅延評価される）
func (r *Reservation) IsBlockingAt(now time.Time) bool {
	switch r.Status {
	case StatusConfirmed, StatusCheckedIn:
		return true
	case StatusPendingConfirmation:
		return r.PendingUntil == nil || r.PendingUntil.After(now)
	default:
		return false
	}
}

// IsClosed は予約が終端状態（finished / cancelled）かを返す
func (r *Reservation) IsClosed() bool {
	return r.Status == StatusFinished || r.Status == StatusCancelled
}

// Confirm は未確定予約を確定する。前受金の記帳は呼び出し側が行う
func (r *Reservation) Confirm(now time.Time) error {
	if r.Status != StatusPendingConfirmation {
		return ErrNotPendingConfirmation
	}
	r.Status = StatusConfirmed
	r.PendingUntil = nil
	r.UpdatedAt = now
	return nil
}

// CheckInGuest は確定済み予約をチェックイン状態にする
func (r *Reservation) CheckInGuest(now time.Time) error {
	if r.Status != StatusConfirmed {
		return ErrNotConfirmed
	}
	r.Status = StatusCheckedIn
	r.UpdatedAt = now
	return nil
}

// CheckOutGuest はチェックイン中の予約を完了状態にする
func (r *Reservation) CheckOutGuest(now time.Time) error {
	if r.Status != StatusCheckedIn {
		return ErrNotCheckedIn
	}
	r.Status = StatusFinished
	r.UpdatedAt = now
	return nil
}

// Cancel は予約をキャンセルする。finished / cancelled からは遷移できない
func (r *Reservation) Cancel(now time.Time) error {
	if r.Status == StatusFinished {
		return ErrAlreadyFinished
	}
	if r.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	r.Status = StatusCancelled
	r.PendingUntil = nil
	r.UpdatedAt = now
	return nil
}

// Reschedule は日程・キャビンを変更し、料金を再計算結果で差し替える
// 新しい日程の空き確認は呼び出し側が除外付きで行っていることを前提とする
func (r *Reservation) Reschedule(cabinID string, checkIn, checkOut time.Time, quote *pricing.Quote, now time.Time) error {
	if r.IsClosed() {
		return ErrReservationClosed
	}
	if !checkOut.After(checkIn) {
		return ErrInvalidDateRange
	}
	r.CabinID = cabinID
	r.CheckIn = dateinterval.Normalize(checkIn)
	r.CheckOut = dateinterval.Normalize(checkOut)
	r.Total = quote.Total
	r.Deposit = quote.Deposit
	r.Balance = quote.Balance
	r.UpdatedAt = now
	return nil
}
