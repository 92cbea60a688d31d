package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/analytics"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// AnalyticsHandler maneja las consultas de rentabilidad (protegido).
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Profit godoc
// @Summary      Rentabilidad de una ventana de fechas
// @Description  period acepta day, week, month o year; si vienen date_start y date_end el rango explícito gana.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        period      query  string  false  "day | week | month | year"  default(day)
// @Param        date_start  query  string  false  "YYYY-MM-DD"
// @Param        date_end    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ProfitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/profit [get]
func (h *AnalyticsHandler) Profit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.ProfitRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.GetProfit(c.Context(), companyID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Top de productos por unidades y por beneficio neto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TopProductsResponse
// @Router       /api/analytics/top-products [get]
func (h *AnalyticsHandler) TopProducts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.GetTopProducts(c.Context(), companyID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
