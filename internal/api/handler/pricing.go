package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/application"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/dateinterval"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/pricing"
)

type PricingHandler struct {
	pricingService PricingServiceInterface
}

func NewPricingHandler(pricingService PricingServiceInterface) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

type CreatePriceGroupRequest struct {
	Name      string `json:"name" validate:"required" example:"ハイシーズン"`
	BasePrice string `json:"base_price" validate:"required" example:"200.00"`
	Priority  int    `json:"priority" example:"10"`
	IsDefault bool   `json:"is_default" example:"false"`
}

type PriceGroupResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string `json:"name" example:"ハイシーズン"`
	BasePrice string `json:"base_price" example:"200.00"`
	Priority  int    `json:"priority" example:"10"`
	IsDefault bool   `json:"is_default" example:"false"`
	CreatedAt string `json:"created_at" example:"2025-01-15T10:00:00Z"`
}

func toPriceGroupResponse(g *pricing.PriceGroup) *PriceGroupResponse {
	return &PriceGroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		BasePrice: g.BasePrice.StringFixed(2),
		Priority:  g.Priority,
		IsDefault: g.IsDefault,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
	}
}

// CreateGroup godoc
// @Summary 料金グループを作成
// @Description 1泊あたりの基本料金と優先度を持つ料金グループを作成します
// @Tags pricing
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param request body CreatePriceGroupRequest true "料金グループ情報"
// @Success 201 {object} PriceGroupResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "デフォルトグループが既に存在"
// @Router /price-groups [post]
func (h *PricingHandler) CreateGroup(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	var req CreatePriceGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	basePrice, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "基本料金の形式が不正です")
	}
	group, err := h.pricingService.CreatePriceGroup(c.Request().Context(), application.CreatePriceGroupInput{
		TenantID:  tenant,
		Name:      req.Name,
		BasePrice: basePrice,
		Priority:  req.Priority,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, toPriceGroupResponse(group))
}

// ListGroups godoc
// @Summary 料金グループ一覧を取得
// @Tags pricing
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Success 200 {array} PriceGroupResponse
// @Router /price-groups [get]
func (h *PricingHandler) ListGroups(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	groups, err := h.pricingService.ListPriceGroups(c.Request().Context(), tenant)
	if err != nil {
		return domainError(err)
	}
	responses := make([]*PriceGroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = toPriceGroupResponse(g)
	}
	return c.JSON(http.StatusOK, responses)
}

type CreatePriceRangeRequest struct {
	GroupID   string `json:"group_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartDate string `json:"start_date" validate:"required" example:"2025-07-01"`
	EndDate   string `json:"end_date" validate:"required" example:"2025-08-31"`
}

type PriceRangeResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	GroupID   string `json:"group_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	GroupName string `json:"group_name" example:"ハイシーズン"`
	StartDate string `json:"start_date" example:"2025-07-01"`
	EndDate   string `json:"end_date" example:"2025-08-31"`
}

func toPriceRangeResponse(r *pricing.PriceRange) *PriceRangeResponse {
	resp := &PriceRangeResponse{
		ID:        r.ID,
		GroupID:   r.GroupID,
		StartDate: r.StartDate.Format(dateinterval.DateFormat),
		EndDate:   r.EndDate.Format(dateinterval.DateFormat),
	}
	if r.Group != nil {
		resp.GroupName = r.Group.Name
	}
	return resp
}

// CreateRange godoc
// @Summary 料金期間を作成
// @Description 料金グループの価格が適用される期間（両端含む）を作成します
// @Tags pricing
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param request body CreatePriceRangeRequest true "料金期間情報"
// @Success 201 {object} PriceRangeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "料金グループが見つからない"
// @Router /price-ranges [post]
func (h *PricingHandler) CreateRange(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	var req CreatePriceRangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	startDate, err := parseDate(req.StartDate, "開始日")
	if err != nil {
		return err
	}
	endDate, err := parseDate(req.EndDate, "終了日")
	if err != nil {
		return err
	}
	pr, err := h.pricingService.CreatePriceRange(c.Request().Context(), application.CreatePriceRangeInput{
		TenantID:  tenant,
		GroupID:   req.GroupID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, toPriceRangeResponse(pr))
}

// ListRanges godoc
// @Summary 料金期間一覧を取得
// @Tags pricing
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Success 200 {array} PriceRangeResponse
// @Router /price-ranges [get]
func (h *PricingHandler) ListRanges(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	ranges, err := h.pricingService.ListPriceRanges(c.Request().Context(), tenant)
	if err != nil {
		return domainError(err)
	}
	responses := make([]*PriceRangeResponse, len(ranges))
	for i, r := range ranges {
		responses[i] = toPriceRangeResponse(r)
	}
	return c.JSON(http.StatusOK, responses)
}

type DailyRateResponse struct {
	Date   string `json:"date" example:"2025-02-10"`
	Price  string `json:"price" example:"200.00"`
	Source string `json:"source" example:"ハイシーズン"`
}

type QuoteResponse struct {
	Nights    int                 `json:"nights" example:"3"`
	Total     string              `json:"total" example:"500.00"`
	Deposit   string              `json:"deposit" example:"250.00"`
	Balance   string              `json:"balance" example:"250.00"`
	Breakdown []DailyRateResponse `json:"breakdown"`
}

func toDailyRateResponses(rates []pricing.DailyRate) []DailyRateResponse {
	responses := make([]DailyRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = DailyRateResponse{
			Date:   rate.Date.Format(dateinterval.DateFormat),
			Price:  rate.Price.StringFixed(2),
			Source: rate.Source,
		}
	}
	return responses
}

// Quote godoc
// @Summary 宿泊見積りを取得
// @Description 指定期間の宿泊料金・前受金・残金と日別内訳を計算します
// @Tags pricing
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param check_in query string true "チェックイン日（YYYY-MM-DD）"
// @Param check_out query string true "チェックアウト日（YYYY-MM-DD）"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} map[string]string
// @Router /pricing/quote [get]
func (h *PricingHandler) Quote(c echo.Context) error {
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
	quote, err := h.pricingService.QuoteStay(c.Request().Context(), tenant, checkIn, checkOut)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, QuoteResponse{
		Nights:    quote.Nights,
		Total:     quote.Total.StringFixed(2),
		Deposit:   quote.Deposit.StringFixed(2),
		Balance:   quote.Balance.StringFixed(2),
		Breakdown: toDailyRateResponses(quote.Breakdown),
	})
}

// DailyRates godoc
// @Summary 日別料金を取得
// @Description 指定期間（両端含む）の日ごとの適用料金を取得します
// @Tags pricing
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param from query string true "開始日（YYYY-MM-DD）"
// @Param to query string true "終了日（YYYY-MM-DD）"
// @Success 200 {array} DailyRateResponse
// @Failure 400 {object} map[string]string
// @Router /pricing/daily-rates [get]
func (h *PricingHandler) DailyRates(c echo.Context) error {
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
	rates, err := h.pricingService.DailyRates(c.Request().Context(), tenant, from, to)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toDailyRateResponses(rates))
}
