package reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType は支払いの種別を表す
type PaymentType string

const (
	PaymentDeposit PaymentType = "deposit"
	PaymentBalance PaymentType = "balance"
)

// Payment は予約に対する支払い記録を表す
// 予約ごとに各種別の支払いは最大1件（一意性は永続化層で保証される）
type Payment struct {
	ID            string
	ReservationID string
	Amount        decimal.Decimal
	Type          PaymentType
	Method        *string
	PaidAt        time.Time
}

// NewPayment は新しい支払い記録を作成する
func NewPayment(reservationID string, amount decimal.Decimal, paymentType PaymentType, method *string, now time.Time) *Payment {
	return &Payment{
		ReservationID: reservationID,
		Amount:        amount,
		Type:          paymentType,
		Method:        method,
		PaidAt:        now,
	}
}

// HasPayment は支払い一覧に指定種別の記録が含まれるかを返す
func HasPayment(payments []*Payment, paymentType PaymentType) bool {
	for _, p := range payments {
		if p.Type == paymentType {
			return true
		}
	}
	return false
}
