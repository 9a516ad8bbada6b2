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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/application"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/cabin"
)

// MockCabinService はCabinServiceInterfaceのモック
type MockCabinService struct {
	mock.Mock
}

func (m *MockCabinService) CreateCabin(ctx context.Context, input application.CreateCabinInput) (*cabin.Cabin, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cabin.Cabin), args.Error(1)
}

func (m *MockCabinService) GetCabin(ctx context.Context, tenantID, id string) (*cabin.Cabin, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cabin.Cabin), args.Error(1)
}

func (m *MockCabinService) ListCabins(ctx context.Context, tenantID string) ([]*cabin.Cabin, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cabin.Cabin), args.Error(1)
}

func (m *MockCabinService) SetCabinActive(ctx context.Context, tenantID, id string, active bool) (*cabin.Cabin, error) {
	args := m.Called(ctx, tenantID, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cabin.Cabin), args.Error(1)
}

func testCabin() *cabin.Cabin {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	return &cabin.Cabin{
		ID:        "cabin-1",
		TenantID:  "tenant-1",
		Name:      "湖畔のキャビンA",
		Capacity:  4,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCabinHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にキャビンを作成できる", func(t *testing.T) {
		mockService := new(MockCabinService)
		mockService.On("CreateCabin", mock.Anything, mock.AnythingOfType("application.CreateCabinInput")).
			Return(testCabin(), nil)

		handler := NewCabinHandler(mockService)

		reqBody := `{"name": "湖畔のキャビンA", "capacity": 4}`
		req := httptest.NewRequest(http.MethodPost, "/cabins", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(TenantIDHeader, "tenant-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp CabinResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "cabin-1", resp.ID)
		assert.True(t, resp.Active)
		mockService.AssertExpectations(t)
	})

	t.Run("定員が不正な場合は400", func(t *testing.T) {
		handler := NewCabinHandler(new(MockCabinService))

		reqBody := `{"name": "湖畔のキャビンA", "capacity": 0}`
		req := httptest.NewRequest(http.MethodPost, "/cabins", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(TenantIDHeader, "tenant-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestCabinHandler_SetActive(t *testing.T) {
	e := NewTestEcho()

	t.Run("予約受付を停止できる", func(t *testing.T) {
		deactivated := testCabin()
		deactivated.Active = false

		mockService := new(MockCabinService)
		mockService.On("SetCabinActive", mock.Anything, "tenant-1", "cabin-1", false).
			Return(deactivated, nil)

		handler := NewCabinHandler(mockService)

		req := httptest.NewRequest(http.MethodPut, "/cabins/cabin-1/active", strings.NewReader(`{"active": false}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(TenantIDHeader, "tenant-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("cabin-1")

		err := handler.SetActive(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp CabinResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Active)
	})

	t.Run("存在しないキャビンは404", func(t *testing.T) {
		mockService := new(MockCabinService)
		mockService.On("SetCabinActive", mock.Anything, "tenant-1", "missing", true).
			Return(nil, cabin.ErrCabinNotFound)

		handler := NewCabinHandler(mockService)

		req := httptest.NewRequest(http.MethodPut, "/cabins/missing/active", strings.NewReader(`{"active": true}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(TenantIDHeader, "tenant-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := handler.SetActive(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}
