package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/application"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/reservation"
)

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

type CreateReservationRequest struct {
	CabinID  string `json:"cabin_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientID string `json:"client_id" validate:"required" example:"client-123"`
	CheckIn  string `json:"check_in" validate:"required" example:"2025-02-10"`
	CheckOut string `json:"check_out" validate:"required" example:"2025-02-13"`
	Notes    string `json:"notes" example:"レイトチェックイン希望"`
}

type PaymentRequest struct {
	Method *string `json:"method,omitempty" example:"card"`
}

type RescheduleRequest struct {
	CabinID  string `json:"cabin_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CheckIn  string `json:"check_in" validate:"required" example:"2025-02-11"`
	CheckOut string `json:"check_out" validate:"required" example:"2025-02-15"`
}

type ReservationResponse struct {
	ID           string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CabinID      string     `json:"cabin_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientID     string     `json:"client_id" example:"client-123"`
	CheckIn      string     `json:"check_in" example:"2025-02-10"`
	CheckOut     string     `json:"check_out" example:"2025-02-13"`
	Status       string     `json:"status" example:"pending_confirmation"`
	PendingUntil *time.Time `json:"pending_until,omitempty"`
	Total        string     `json:"total" example:"500.00"`
	Deposit      string     `json:"deposit" example:"250.00"`
	Balance      string     `json:"balance" example:"250.00"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		CabinID:      r.CabinID,
		ClientID:     r.ClientID,
		CheckIn:      r.CheckIn.Format(dateinterval.DateFormat),
		CheckOut:     r.CheckOut.Format(dateinterval.DateFormat),
		Status:       string(r.Status),
		PendingUntil: r.PendingUntil,
		Total:        r.Total.StringFixed(2),
		Deposit:      r.Deposit.StringFixed(2),
		Balance:      r.Balance.StringFixed(2),
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}

type PaymentResponse struct {
	ID            string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ReservationID string    `json:"reservation_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Amount        string    `json:"amount" example:"250.00"`
	Type          string    `json:"type" example:"deposit"`
	Method        *string   `json:"method,omitempty" example:"card"`
	PaidAt        time.Time `json:"paid_at"`
}

func toPaymentResponse(p *reservation.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount.StringFixed(2),
		Type:          string(p.Type),
		Method:        p.Method,
		PaidAt:        p.PaidAt,
	}
}

// Create godoc
// @Summary 予約を作成
// @Description キャビンの空きを確認し、確定待ちの予約を作成します（デフォルト48時間有効）
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param request body CreateReservationRequest true "予約情報"
// @Success 201 {object} ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "指定期間に空きがない"
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	checkIn, err := parseDate(req.CheckIn, "チェックイン日")
	if err != nil {
		return err
	}
	checkOut, err := parseDate(req.CheckOut, "チェックアウト日")
	if err != nil {
		return err
	}
	r, err := h.service.CreateReservation(c.Request().Context(), application.CreateReservationInput{
		TenantID: tenant,
		CabinID:  req.CabinID,
		ClientID: req.ClientID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Notes:    req.Notes,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r))
}

// GetByID godoc
// @Summary 予約を取得
// @Tags reservations
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	r, err := h.service.GetReservation(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// ListByClient godoc
// @Summary クライアントの予約一覧を取得
// @Tags reservations
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param client_id query string true "クライアントID"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} ReservationResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListByClient(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	clientID := c.QueryParam("client_id")
	if clientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "クライアントIDは必須です")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	reservations, err := h.service.ListClientReservations(c.Request().Context(), tenant, clientID, limit, offset)
	if err != nil {
		return domainError(err)
	}
	resp := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = toReservationResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPayments godoc
// @Summary 予約の支払い記録を取得
// @Tags reservations
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "予約ID"
// @Success 200 {array} PaymentResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id}/payments [get]
func (h *ReservationHandler) GetPayments(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	payments, err := h.service.GetPayments(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	resp := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}
	return c.JSON(http.StatusOK, resp)
}

// Confirm godoc
// @Summary 予約を確定
// @Description 前受金の支払いを記帳し、確定待ちの予約を確定します
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "予約ID"
// @Param request body PaymentRequest false "支払い方法"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "確定待ちでない・期限切れ"
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) Confirm(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	r, err := h.service.ConfirmReservation(c.Request().Context(), tenant, c.Param("id"), req.Method)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// PayBalance godoc
// @Summary 残金を支払う
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "予約ID"
// @Param request body PaymentRequest false "支払い方法"
// @Success 200 {object} PaymentResponse
// @Failure 409 {object} map[string]string "残金は支払い済み"
// @Router /reservations/{id}/pay-balance [post]
func (h *ReservationHandler) PayBalance(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	p, err := h.service.PayBalance(c.Request().Context(), tenant, c.Param("id"), req.Method)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toPaymentResponse(p))
}

// CheckIn godoc
// @Summary チェックイン
// @Description 確定済み予約をチェックイン状態にします。残金が未払いの場合はここで記帳されます
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "予約ID"
// @Param request body PaymentRequest false "支払い方法"
// @Success 200 {object} ReservationResponse
// @Failure 409 {object} map[string]string "確定済みでない"
// @Router /reservations/{id}/check-in [post]
func (h *ReservationHandler) CheckIn(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	r, err := h.service.CheckIn(c.Request().Context(), tenant, c.Param("id"), req.Method)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// CheckOut godoc
// @Summary チェックアウト
// @Description チェックイン中の予約を完了状態にします
// @Tags reservations
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 409 {object} map[string]string "チェックイン中でない"
// @Router /reservations/{id}/check-out [post]
func (h *ReservationHandler) CheckOut(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	r, err := h.service.CheckOut(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約をキャンセルし、占有期間を解放します
// @Tags reservations
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "完了済み・キャンセル済み"
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	r, err := h.service.CancelReservation(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// Reschedule godoc
// @Summary 予約の日程を変更
// @Description 日程（およびキャビン）を変更し、料金を再計算します。空き確認では予約自身は除外されます
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "予約ID"
// @Param request body RescheduleRequest true "新しい日程"
// @Success 200 {object} ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "新しい期間に空きがない"
// @Router /reservations/{id}/schedule [put]
func (h *ReservationHandler) Reschedule(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	var req RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	checkIn, err := parseDate(req.CheckIn, "チェックイン日")
	if err != nil {
		return err
	}
	checkOut, err := parseDate(req.CheckOut, "チェックアウト日")
	if err != nil {
		return err
	}
	r, err := h.service.RescheduleReservation(c.Request().Context(), tenant, c.Param("id"), application.RescheduleInput{
		CabinID:  req.CabinID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}
