package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
)

// SourceNone はどの料金期間にも該当せずデフォルトも未設定の日を示すラベル
const SourceNone = "unconfigured"

// DailyRate はある暦日に解決された料金を表す
type DailyRate struct {
	Date   time.Time       `json:"date"`
	Price  decimal.Decimal `json:"price"`
	Source string          `json:"source"`
}

// ResolveDailyRates は start から end まで（両端含む）の各暦日について
// 適用される料金を解決する
//
// 勝者は所有グループの優先度の降順で選ばれ、優先度が同じ場合は
// 作成日時の新しい料金期間が勝つ。どの期間にも該当しない日は
// defaultGroup の料金にフォールバックし、defaultGroup が nil の場合は
// 価格0・ラベル SourceNone となる。
//
// 入力のみに依存する純粋な関数であり、同じ入力に対して常に同じ結果を返す。
// ranges は呼び出し側でテナント絞り込み済みであることを前提とする。
func ResolveDailyRates(start, end time.Time, ranges []*PriceRange, defaultGroup *PriceGroup) ([]DailyRate, error) {
	start = dateinterval.Normalize(start)
	end = dateinterval.Normalize(end)
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	days := dateinterval.DaysInRange(start, end)
	rates := make([]DailyRate, 0, len(days))
	for _, day := range days {
		rates = append(rates, resolveDay(day, ranges, defaultGroup))
	}
	return rates, nil
}

// resolveDay は1日分の勝者を決定する
func resolveDay(day time.Time, ranges []*PriceRange, defaultGroup *PriceGroup) DailyRate {
	var winner *PriceRange
	for _, r := range ranges {
		if r.Group == nil || !r.Covers(day) {
			continue
		}
		if winner == nil || r.Beats(winner) {
			winner = r
		}
	}

	if winner != nil {
		return DailyRate{Date: day, Price: winner.Group.BasePrice, Source: winner.Group.Name}
	}
	if defaultGroup != nil {
		return DailyRate{Date: day, Price: defaultGroup.BasePrice, Source: defaultGroup.Name}
	}
	return DailyRate{Date: day, Price: decimal.Zero, Source: SourceNone}
}
