package handler

import (
	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/repository"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type EntidadeHandler struct {
	entidadeRepo *repository.EntidadeRepository
}

func NewEntidadeHandler(entidadeRepo *repository.EntidadeRepository) *EntidadeHandler {
	return &EntidadeHandler{entidadeRepo: entidadeRepo}
}

func (h *EntidadeHandler) GetEntidades(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	entidades, total, err := h.entidadeRepo.FindAll(params.Limit, offset, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve entidades", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Entidades retrieved successfully", fiber.Map{
		"entidades": entidades,
	}, pagination)
}

func (h *EntidadeHandler) GetEntidade(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entidade ID", err)
	}

	entidade, err := h.entidadeRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Entidade not found", err)
	}

	return utils.SuccessResponse(c, "Entidade retrieved successfully", entidade)
}

func (h *EntidadeHandler) CreateEntidade(c *fiber.Ctx) error {
	var entidade models.Entidade
	if err := c.BodyParser(&entidade); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if entidade.Nome == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Nome is required", nil)
	}

	if err := h.entidadeRepo.Create(&entidade); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create entidade", err)
	}

	return utils.SuccessResponse(c, "Entidade created successfully", entidade)
}

func (h *EntidadeHandler) UpdateEntidade(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entidade ID", err)
	}

	existing, err := h.entidadeRepo.FindByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Entidade not found", err)
	}

	var entidade models.Entidade
	if err := c.BodyParser(&entidade); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	entidade.ID = existing.ID

	if err := h.entidadeRepo.Update(&entidade); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update entidade", err)
	}

	return utils.SuccessResponse(c, "Entidade updated successfully", entidade)
}
