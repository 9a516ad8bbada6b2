package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/cabin"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/pricing"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/reservation"
)

// TenantIDHeader はテナントを識別するリクエストヘッダー
const TenantIDHeader = "X-Tenant-ID"

func tenantID(c echo.Context) (string, error) {
	id := c.Request().Header.Get(TenantIDHeader)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "テナントIDが必要です")
	}
	return id, nil
}

// parseDate は YYYY-MM-DD 形式のクエリ・リクエスト値を暦日として解釈する
func parseDate(value, label string) (time.Time, error) {
	if value == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, label+"は必須です")
	}
	t, err := time.Parse(dateinterval.DateFormat, value)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, label+"の形式が不正です（YYYY-MM-DD）")
	}
	return t, nil
}

var notFoundErrors = []error{
	cabin.ErrCabinNotFound,
	pricing.ErrPriceGroupNotFound,
	pricing.ErrPriceRangeNotFound,
	reservation.ErrReservationNotFound,
}

// 状態機械の遷移違反はリクエスト形式の問題ではなくリソースの
// 現在状態との衝突なので 409 に対応付ける
var conflictErrors = []error{
	reservation.ErrCabinNotAvailable,
	reservation.ErrOverlapConflict,
	reservation.ErrDepositAlreadyPaid,
	reservation.ErrBalanceAlreadyPaid,
	reservation.ErrNotPendingConfirmation,
	reservation.ErrPendingExpired,
	reservation.ErrNotConfirmed,
	reservation.ErrNotCheckedIn,
	reservation.ErrAlreadyFinished,
	reservation.ErrAlreadyCancelled,
	reservation.ErrReservationClosed,
	cabin.ErrCabinInactive,
	pricing.ErrDefaultGroupExists,
}

var badRequestErrors = []error{
	cabin.ErrTenantIDRequired,
	cabin.ErrCabinNameRequired,
	cabin.ErrInvalidCapacity,
	pricing.ErrTenantIDRequired,
	pricing.ErrGroupIDRequired,
	pricing.ErrGroupNameRequired,
	pricing.ErrNegativePrice,
	pricing.ErrInvalidDateRange,
	reservation.ErrInvalidDateRange,
}

// domainError はドメインエラーをHTTPステータスに対応付ける
func domainError(err error) error {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
