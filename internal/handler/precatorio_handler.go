package handler

import (
	"github.com/Ativos-Tecnologia/radar-sub000/internal/repository"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PrecatorioHandler struct {
	precatorioRepo *repository.PrecatorioRepository
}

func NewPrecatorioHandler(precatorioRepo *repository.PrecatorioRepository) *PrecatorioHandler {
	return &PrecatorioHandler{precatorioRepo: precatorioRepo}
}

func (h *PrecatorioHandler) GetPrecatorios(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	precatorios, total, err := h.precatorioRepo.FindAll(params.Limit, offset, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve precatorios", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Precatorios retrieved successfully", fiber.Map{
		"precatorios": precatorios,
	}, pagination)
}

// GetPrecatorio returns a single record with its movimentações loaded.
func (h *PrecatorioHandler) GetPrecatorio(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid precatorio ID", err)
	}

	precatorio, err := h.precatorioRepo.FindByID(int64(id))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Precatorio not found", err)
	}

	return utils.SuccessResponse(c, "Precatorio retrieved successfully", precatorio)
}
