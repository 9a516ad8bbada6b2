package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/application"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/pricing"
)

// MockPricingService はPricingServiceInterfaceのモック
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) CreatePriceGroup(ctx context.Context, input application.CreatePriceGroupInput) (*pricing.PriceGroup, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceGroup), args.Error(1)
}

func (m *MockPricingService) ListPriceGroups(ctx context.Context, tenantID string) ([]*pricing.PriceGroup, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.PriceGroup), args.Error(1)
}

func (m *MockPricingService) CreatePriceRange(ctx context.Context, input application.CreatePriceRangeInput) (*pricing.PriceRange, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceRange), args.Error(1)
}

func (m *MockPricingService) ListPriceRanges(ctx context.Context, tenantID string) ([]*pricing.PriceRange, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.PriceRange), args.Error(1)
}

func (m *MockPricingService) QuoteStay(ctx context.Context, tenantID string, checkIn, checkOut time.Time) (*pricing.Quote, error) {
	args := m.Called(ctx, tenantID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

func (m *MockPricingService) DailyRates(ctx context.Context, tenantID string, from, to time.Time) ([]pricing.DailyRate, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.DailyRate), args.Error(1)
}

func TestPricingHandler_CreateGroup(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に料金グループを作成できる", func(t *testing.T) {
		group := &pricing.PriceGroup{
			ID:        "group-1",
			TenantID:  "tenant-1",
			Name:      "ハイシーズン",
			BasePrice: decimal.RequireFromString("200.00"),
			Priority:  10,
			CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		}
		mockService := new(MockPricingService)
		mockService.On("CreatePriceGroup", mock.Anything, mock.MatchedBy(func(input application.CreatePriceGroupInput) bool {
			return input.TenantID == "tenant-1" && input.BasePrice.Equal(decimal.RequireFromString("200.00"))
		})).Return(group, nil)

		handler := NewPricingHandler(mockService)

		reqBody := `{"name": "ハイシーズン", "base_price": "200.00", "priority": 10}`
		req := httptest.NewRequest(http.MethodPost, "/price-groups", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(TenantIDHeader, "tenant-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.CreateGroup(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp PriceGroupResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "200.00", resp.BasePrice)
		mockService.AssertExpectations(t)
	})

	t.Run("デフォルトグループが重複する場合は409", func(t *testing.T) {
		mockService := new(MockPricingService)
		mockService.On("CreatePriceGroup", mock.Anything, mock.Anything).
			Return(nil, pricing.ErrDefaultGroupExists)

		handler := NewPricingHandler(mockService)

		reqBody := `{"name": "通常", "base_price": "100.00", "is_default": true}`
		req := httptest.NewRequest(http.MethodPost, "/price-groups", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(TenantIDHeader, "tenant-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.CreateGroup(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusConflict, he.Code)
	})

	t.Run("料金の形式が不正な場合は400", func(t *testing.T) {
		handler := NewPricingHandler(new(MockPricingService))

		reqBody := `{"name": "通常", "base_price": "abc"}`
		req := httptest.NewRequest(http.MethodPost, "/price-groups", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(TenantIDHeader, "tenant-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.CreateGroup(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestPricingHandler_Quote(t *testing.T) {
	e := NewTestEcho()

	t.Run("見積りを取得できる", func(t *testing.T) {
		quote := &pricing.Quote{
			Nights:  3,
			Total:   decimal.NewFromInt(500),
			Deposit: decimal.NewFromInt(250),
			Balance: decimal.NewFromInt(250),
			Breakdown: []pricing.DailyRate{
				{Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), Price: decimal.NewFromInt(200), Source: "High"},
				{Date: time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC), Price: decimal.NewFromInt(200), Source: "High"},
				{Date: time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC), Price: decimal.NewFromInt(100), Source: "Low"},
			},
		}
		mockService := new(MockPricingService)
		mockService.On("QuoteStay", mock.Anything, "tenant-1",
			time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 13, 0, 0, 0, 0, time.UTC)).
			Return(quote, nil)

		handler := NewPricingHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/pricing/quote?check_in=2025-02-10&check_out=2025-02-13", nil)
		req.Header.Set(TenantIDHeader, "tenant-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Quote(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Nights)
		assert.Equal(t, "500.00", resp.Total)
		require.Len(t, resp.Breakdown, 3)
		assert.Equal(t, "2025-02-12", resp.Breakdown[2].Date)
		assert.Equal(t, "Low", resp.Breakdown[2].Source)
	})

	t.Run("チェックイン日がない場合は400", func(t *testing.T) {
		handler := NewPricingHandler(new(MockPricingService))

		req := httptest.NewRequest(http.MethodGet, "/pricing/quote?check_out=2025-02-13", nil)
		req.Header.Set(TenantIDHeader, "tenant-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Quote(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}
