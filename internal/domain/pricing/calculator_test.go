package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 優先度10の "High"（$200/泊）が 2/10〜2/11 を覆い、
// デフォルトは優先度0の "Low"（$100/泊）。2/12 の夜はデフォルトに落ちる
func TestCalculatePrice_Scenario(t *testing.T) {
	low := testGroup("Low", 100, 0, true)
	high := testGroup("High", 200, 10, false)
	ranges := []*PriceRange{
		testRange(high, date(2025, 2, 10), date(2025, 2, 11), date(2025, 1, 2)),
	}

	q, err := CalculatePrice(date(2025, 2, 10), date(2025, 2, 13), ranges, low)
	require.NoError(t, err)

	assert.Equal(t, 3, q.Nights)
	require.Len(t, q.Breakdown, 3)
	assert.Equal(t, "High", q.Breakdown[0].Source)
	assert.Equal(t, "High", q.Breakdown[1].Source)
	assert.Equal(t, "Low", q.Breakdown[2].Source)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(500)))
	assert.True(t, q.Deposit.Equal(decimal.NewFromInt(250)))
	assert.True(t, q.Balance.Equal(decimal.NewFromInt(250)))
}

func TestCalculatePrice_CheckoutNightNotCharged(t *testing.T) {
	def := testGroup("Base", 100, 0, true)
	q, err := CalculatePrice(date(2025, 3, 1), date(2025, 3, 3), nil, def)
	require.NoError(t, err)
	assert.Equal(t, 2, q.Nights)
	require.Len(t, q.Breakdown, 2)
	assert.Equal(t, date(2025, 3, 1), q.Breakdown[0].Date)
	assert.Equal(t, date(2025, 3, 2), q.Breakdown[1].Date) // 3/3（チェックアウト日）は含まれない
	assert.True(t, q.Total.Equal(decimal.NewFromInt(200)))
}

func TestCalculatePrice_ZeroNights(t *testing.T) {
	def := testGroup("Base", 100, 0, true)
	q, err := CalculatePrice(date(2025, 3, 1), date(2025, 3, 1), nil, def)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Nights)
	assert.True(t, q.Total.IsZero())
	assert.True(t, q.Deposit.IsZero())
	assert.True(t, q.Balance.IsZero())
	assert.Empty(t, q.Breakdown)
}

func TestCalculatePrice_InvertedRange(t *testing.T) {
	def := testGroup("Base", 100, 0, true)
	q, err := CalculatePrice(date(2025, 3, 5), date(2025, 3, 1), nil, def)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Nights)
	assert.True(t, q.Total.IsZero())
}

func TestCalculatePrice_NoRoundingDrift(t *testing.T) {
	// 半額が割り切れない合計でも Deposit + Balance == Total を厳密に保つ
	tests := []struct {
		name  string
		price string
	}{
		{"割り切れる", "100.00"},
		{"半額が端数", "33.33"},
		{"1セント", "0.01"},
		{"3泊で奇数セント", "66.67"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := decimal.NewFromString(tt.price)
			require.NoError(t, err)
			def := &PriceGroup{ID: "g", TenantID: "t", Name: "Base", BasePrice: p, IsDefault: true}

			q, err := CalculatePrice(date(2025, 3, 1), date(2025, 3, 4), nil, def)
			require.NoError(t, err)
			assert.True(t, q.Deposit.Add(q.Balance).Equal(q.Total),
				"deposit=%s balance=%s total=%s", q.Deposit, q.Balance, q.Total)
			assert.True(t, q.Total.Equal(p.Mul(decimal.NewFromInt(3)).Round(2)))
		})
	}
}

func TestCalculatePrice_NoRateConfigured(t *testing.T) {
	q, err := CalculatePrice(date(2025, 3, 1), date(2025, 3, 2), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Nights)
	require.Len(t, q.Breakdown, 1)
	assert.Equal(t, SourceNone, q.Breakdown[0].Source)
	assert.True(t, q.Total.IsZero())
}

func TestCalculatePrice_TimeOfDayIgnored(t *testing.T) {
	def := testGroup("Base", 100, 0, true)
	checkIn := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC)
	q, err := CalculatePrice(checkIn, checkOut, nil, def)
	require.NoError(t, err)
	assert.Equal(t, 2, q.Nights)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(200)))
}
