package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
)

// depositRate は前受金の割合（合計の50%）
var depositRate = decimal.NewFromFloat(0.5)

// Quote は宿泊料金の見積りを表す
type Quote struct {
	Nights    int             `json:"nights"`
	Total     decimal.Decimal `json:"total"`
	Deposit   decimal.Decimal `json:"deposit"`
	Balance   decimal.Decimal `json:"balance"`
	Breakdown []DailyRate     `json:"breakdown"`
}

// CalculatePrice はチェックインからチェックアウトまでの宿泊料金を計算する
//
// 課金対象は checkIn から checkOut の前日まで（チェックアウト日の夜は
// 課金されない）。Total は2桁丸め、Deposit は Total の半額を2桁丸め、
// Balance は Total - Deposit とすることで Deposit + Balance が常に
// Total と一致する（双方を独立に丸めた際の誤差を避ける）。
//
// 泊数が1未満の場合はゼロ見積りを返す。呼び出し側が事前に拒否している
// 前提だが、ここで落ちてはならない。
func CalculatePrice(checkIn, checkOut time.Time, ranges []*PriceRange, defaultGroup *PriceGroup) (*Quote, error) {
	checkIn = dateinterval.Normalize(checkIn)
	checkOut = dateinterval.Normalize(checkOut)

	nights := dateinterval.Nights(checkIn, checkOut)
	if nights < 1 {
		return &Quote{
			Nights:    0,
			Total:     decimal.Zero,
			Deposit:   decimal.Zero,
			Balance:   decimal.Zero,
			Breakdown: []DailyRate{},
		}, nil
	}

	breakdown, err := ResolveDailyRates(checkIn, checkOut.AddDate(0, 0, -1), ranges, defaultGroup)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, rate := range breakdown {
		total = total.Add(rate.Price)
	}
	total = total.Round(2)
	deposit := total.Mul(depositRate).Round(2)
	balance := total.Sub(deposit)

	return &Quote{
		Nights:    nights,
		Total:     total,
		Deposit:   deposit,
		Balance:   balance,
		Breakdown: breakdown,
	}, nil
}
