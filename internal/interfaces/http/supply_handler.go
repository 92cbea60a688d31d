package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/supply"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/metrics"
)

// SupplyHandler maneja las peticiones HTTP para suministros (protegido).
type SupplyHandler struct {
	uc *supply.UseCase
}

// NewSupplyHandler construye el handler.
func NewSupplyHandler(uc *supply.UseCase) *SupplyHandler {
	return &SupplyHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar suministro
// @Description  Valida y aplica todas las líneas en una sola transacción: stock, precio de compra y precio de venta (margen fijo).
// @Tags         supplies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplyRequest  true  "Suministro a registrar"
// @Success      201   {object}  dto.SupplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Router       /api/supplies [post]
func (h *SupplyHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CreateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSupply(c.Context(), companyID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	metrics.SuppliesCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar suministros de la empresa
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplyResponse
// @Router       /api/supplies [get]
func (h *SupplyHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.ListSupplies(c.Context(), companyID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Revertir un suministro
// @Description  Resta del stock lo que el suministro aportó. Falla con 409 si parte de la mercancía ya se vendió.
// @Tags         supplies
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del suministro"
// @Success      200  {object}  dto.SupplyReversalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.StockErrorResponse
// @Router       /api/supplies/{id} [delete]
func (h *SupplyHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.DeleteSupply(c.Context(), companyID, id)
	if err != nil {
		return writeDomainError(c, err)
	}
	metrics.ReversalsApplied.WithLabelValues("supply").Inc()
	return c.JSON(out)
}
