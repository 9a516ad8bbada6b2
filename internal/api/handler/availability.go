package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
)

// AvailabilityHandler は空き照会のハンドラー
// 空き判定はリクエスト受信時刻を基準に行われるため、期限切れの
// 未確定予約は掃除処理を待たずに空きとして扱われる
type AvailabilityHandler struct {
	availabilityService AvailabilityServiceInterface
}

func NewAvailabilityHandler(availabilityService AvailabilityServiceInterface) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

// ListAvailable godoc
// @Summary 空きキャビン一覧を取得
// @Description 指定期間に空きのある予約受付中キャビンを取得します
// @Tags availability
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param check_in query string true "チェックイン日（YYYY-MM-DD）"
// @Param check_out query string true "チェックアウト日（YYYY-MM-DD）"
// @Success 200 {array} CabinResponse
// @Failure 400 {object} map[string]string
// @Router /cabins/available [get]
func (h *AvailabilityHandler) ListAvailable(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	checkIn, err := parseDate(c.QueryParam("check_in"), "チェックイン日")
	if err != nil {
		return err
	}
	checkOut, err := parseDate(c.QueryParam("check_out"), "チェックアウト日")
	if err != nil {
		return err
	}
	cabins, err := h.availabilityService.AvailableCabins(c.Request().Context(), tenant, checkIn, checkOut, time.Now())
	if err != nil {
		return domainError(err)
	}
	responses := make([]*CabinResponse, len(cabins))
	for i, item := range cabins {
		responses[i] = toCabinResponse(item)
	}
	return c.JSON(http.StatusOK, responses)
}

type BlockedRangeResponse struct {
	From          string `json:"from" example:"2025-02-10"`
	To            string `json:"to" example:"2025-02-13"`
	Status        string `json:"status" example:"confirmed"`
	ReservationID string `json:"reservation_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type BlockedRangesResponse struct {
	CabinID string                 `json:"cabin_id"`
	From    string                 `json:"from" example:"2025-02-01"`
	To      string                 `json:"to" example:"2025-03-01"`
	Ranges  []BlockedRangeResponse `json:"ranges"`
}

// BlockedRanges godoc
// @Summary 占有期間レポートを取得
// @Description キャビンの指定期間に掛かる占有予約の一覧を取得します
// @Tags availability
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "キャビンID"
// @Param from query string true "開始日（YYYY-MM-DD）"
// @Param to query string true "終了日（YYYY-MM-DD）"
// @Success 200 {object} BlockedRangesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "キャビンが見つからない（他テナント含む）"
// @Router /cabins/{id}/blocked [get]
func (h *AvailabilityHandler) BlockedRanges(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	from, err := parseDate(c.QueryParam("from"), "開始日")
	if err != nil {
		return err
	}
	to, err := parseDate(c.QueryParam("to"), "終了日")
	if err != nil {
		return err
	}
	report, err := h.availabilityService.BlockedRanges(c.Request().Context(), tenant, c.Param("id"), from, to, time.Now())
	if err != nil {
		return domainError(err)
	}
	resp := BlockedRangesResponse{
		CabinID: report.CabinID,
		From:    report.From.Format(dateinterval.DateFormat),
		To:      report.To.Format(dateinterval.DateFormat),
		Ranges:  make([]BlockedRangeResponse, len(report.Ranges)),
	}
	for i, r := range report.Ranges {
		resp.Ranges[i] = BlockedRangeResponse{
			From:          r.From.Format(dateinterval.DateFormat),
			To:            r.To.Format(dateinterval.DateFormat),
			Status:        string(r.Status),
			ReservationID: r.ReservationID,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

type DayStatusResponse struct {
	Date   string `json:"date" example:"2025-02-10"`
	Status string `json:"status" example:"free"`
}

// Calendar godoc
// @Summary 占有カレンダーを取得
// @Description キャビンの日ごとの占有状態を取得します（両端含む）
// @Tags availability
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "キャビンID"
// @Param from query string true "開始日（YYYY-MM-DD）"
// @Param to query string true "終了日（YYYY-MM-DD）"
// @Success 200 {array} DayStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "キャビンが見つからない（他テナント含む）"
// @Router /cabins/{id}/calendar [get]
func (h *AvailabilityHandler) Calendar(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	from, err := parseDate(c.QueryParam("from"), "開始日")
	if err != nil {
		return err
	}
	to, err := parseDate(c.QueryParam("to"), "終了日")
	if err != nil {
		return err
	}
	days, err := h.availabilityService.Calendar(c.Request().Context(), tenant, c.Param("id"), from, to, time.Now())
	if err != nil {
		return domainError(err)
	}
	resp := make([]DayStatusResponse, len(days))
	for i, day := range days {
		resp[i] = DayStatusResponse{
			Date:   day.Date.Format(dateinterval.DateFormat),
			Status: day.Status,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
