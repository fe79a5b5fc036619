package handler

import (
	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/repository"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TribunalHandler struct {
	tribunalRepo *repository.TribunalRepository
}

func NewTribunalHandler(tribunalRepo *repository.TribunalRepository) *TribunalHandler {
	return &TribunalHandler{tribunalRepo: tribunalRepo}
}

func (h *TribunalHandler) GetTribunais(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	tribunais, total, err := h.tribunalRepo.FindAll(params.Limit, offset, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve tribunais", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Tribunais retrieved successfully", fiber.Map{
		"tribunais": tribunais,
	}, pagination)
}

func (h *TribunalHandler) GetTribunal(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tribunal ID", err)
	}

	tribunal, err := h.tribunalRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Tribunal not found", err)
	}

	return utils.SuccessResponse(c, "Tribunal retrieved successfully", tribunal)
}

func (h *TribunalHandler) CreateTribunal(c *fiber.Ctx) error {
	var tribunal models.Tribunal
	if err := c.BodyParser(&tribunal); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if tribunal.Sigla == "" || tribunal.Nome == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Sigla and nome are required", nil)
	}

	if err := h.tribunalRepo.Create(&tribunal); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create tribunal", err)
	}

	return utils.SuccessResponse(c, "Tribunal created successfully", tribunal)
}
