package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/application"
	"github.com/SantiNG23/api-gestion-hotelera-sub000/internal/domain/cabin"
)

type CabinHandler struct {
	cabinService CabinServiceInterface
}

func NewCabinHandler(cabinService CabinServiceInterface) *CabinHandler {
	return &CabinHandler{cabinService: cabinService}
}

type CreateCabinRequest struct {
	Name        string `json:"name" validate:"required" example:"湖畔のキャビンA"`
	Description string `json:"description" example:"湖が見える2階建てキャビン"`
	Capacity    int    `json:"capacity" validate:"required,gt=0" example:"4"`
}

type SetCabinActiveRequest struct {
	Active bool `json:"active"`
}

type CabinResponse struct {
	ID          string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string `json:"name" example:"湖畔のキャビンA"`
	Description string `json:"description" example:"湖が見える2階建てキャビン"`
	Capacity    int    `json:"capacity" example:"4"`
	Active      bool   `json:"active" example:"true"`
	CreatedAt   string `json:"created_at" example:"2025-01-15T10:00:00Z"`
	UpdatedAt   string `json:"updated_at" example:"2025-01-15T10:00:00Z"`
}

func toCabinResponse(c *cabin.Cabin) *CabinResponse {
	return &CabinResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Capacity:    c.Capacity,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary キャビンを作成
// @Description 新しいキャビンを作成します
// @Tags cabins
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param request body CreateCabinRequest true "キャビン情報"
// @Success 201 {object} CabinResponse
// @Failure 400 {object} map[string]string
// @Router /cabins [post]
func (h *CabinHandler) Create(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	var req CreateCabinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	created, err := h.cabinService.CreateCabin(c.Request().Context(), application.CreateCabinInput{
		TenantID:    tenant,
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, toCabinResponse(created))
}

// GetByID godoc
// @Summary キャビンを取得
// @Description 指定IDのキャビンを取得します
// @Tags cabins
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "キャビンID"
// @Success 200 {object} CabinResponse
// @Failure 404 {object} map[string]string
// @Router /cabins/{id} [get]
func (h *CabinHandler) GetByID(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	found, err := h.cabinService.GetCabin(c.Request().Context(), tenant, c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toCabinResponse(found))
}

// List godoc
// @Summary キャビン一覧を取得
// @Description テナントのキャビン一覧を取得します
// @Tags cabins
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Success 200 {array} CabinResponse
// @Router /cabins [get]
func (h *CabinHandler) List(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	cabins, err := h.cabinService.ListCabins(c.Request().Context(), tenant)
	if err != nil {
		return domainError(err)
	}
	responses := make([]*CabinResponse, len(cabins))
	for i, item := range cabins {
		responses[i] = toCabinResponse(item)
	}
	return c.JSON(http.StatusOK, responses)
}

// SetActive godoc
// @Summary キャビンの予約受付状態を変更
// @Description キャビンの予約受付を停止・再開します。既存予約には影響しません
// @Tags cabins
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "テナントID"
// @Param id path string true "キャビンID"
// @Param request body SetCabinActiveRequest true "受付状態"
// @Success 200 {object} CabinResponse
// @Failure 404 {object} map[string]string
// @Router /cabins/{id}/active [put]
func (h *CabinHandler) SetActive(c echo.Context) error {
	tenant, err := tenantID(c)
	if err != nil {
		return err
	}
	var req SetCabinActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	updated, err := h.cabinService.SetCabinActive(c.Request().Context(), tenant, c.Param("id"), req.Active)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, toCabinResponse(updated))
}
