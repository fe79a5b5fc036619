package handler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/config"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/repository"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/service"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/utils"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type ImportHandler struct {
	importService   *service.ImportService
	templateService *service.TemplateService
	sessionRepo     *repository.ImportSessionRepository
	asynqClient     *asynq.Client
	rdb             *redis.Client
	cfg             *config.Config
}

func NewImportHandler(
	importService *service.ImportService,
	templateService *service.TemplateService,
	sessionRepo *repository.ImportSessionRepository,
	asynqClient *asynq.Client,
	rdb *redis.Client,
	cfg *config.Config,
) *ImportHandler {
	return &ImportHandler{
		importService:   importService,
		templateService: templateService,
		sessionRepo:     sessionRepo,
		asynqClient:     asynqClient,
		rdb:             rdb,
		cfg:             cfg,
	}
}

// Import runs the upload through the import pipeline synchronously and
// returns the terminal result. Progress is streamed over the websocket
// channel while the request is in flight.
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	clientID := c.FormValue("client_id")

	session, err := h.acceptUpload(c, userID, clientID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	h.sessionRepo.UpdateSessionStatus(session.ID, models.ImportStatusProcessing)

	result, err := h.importService.ImportFile(session.FilePath, clientID)
	if err != nil {
		h.sessionRepo.MarkFailed(session.ID, err.Error())
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Import failed", err)
	}

	status := models.ImportStatusCompleted
	if err := h.sessionRepo.ApplyResult(session.ID, result, status); err != nil {
		utils.GetLogger().WithError(err).Warn("persist import session result")
	}

	return utils.SuccessResponse(c, "Import finished", result)
}

// ImportAsync queues the upload for background processing and returns the
// session immediately; the result is observed through the progress channel
// or the session record.
func (h *ImportHandler) ImportAsync(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	clientID := c.FormValue("client_id")

	if h.asynqClient == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Background job processing is not available (Redis not connected)", nil)
	}

	session, err := h.acceptUpload(c, userID, clientID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	task, err := worker.NewImportTask(worker.ImportTaskPayload{
		SessionID:   session.ID,
		SessionCode: session.SessionCode,
		FilePath:    session.FilePath,
		ClientID:    clientID,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build processing task", err)
	}

	info, err := h.asynqClient.Enqueue(task)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue processing task", err)
	}

	return utils.SuccessResponse(c, "Import queued", fiber.Map{
		"job_id":  info.ID,
		"session": session,
	})
}

// acceptUpload validates the multipart file, stores it under the upload path
// and records an import session for it.
func (h *ImportHandler) acceptUpload(c *fiber.Ctx, userID int, clientID string) (*models.ImportSession, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".xlsx" && ext != ".xls" {
		return nil, fmt.Errorf("only Excel files (.xlsx, .xls) are allowed")
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return nil, fmt.Errorf("file size exceeds maximum limit")
	}

	if err := os.MkdirAll(h.cfg.UploadPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory")
	}

	sessionCode := fmt.Sprintf("IMPORT-%s", uuid.New().String()[:8])
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", sessionCode, ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return nil, fmt.Errorf("failed to save file")
	}

	session := &models.ImportSession{
		SessionCode: sessionCode,
		UserID:      userID,
		Filename:    file.Filename,
		FilePath:    filePath,
		ClientID:    clientID,
		Status:      models.ImportStatusQueued,
	}
	if err := h.sessionRepo.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create import session")
	}

	return session, nil
}

// DownloadTemplate serves the ready-to-fill import spreadsheet.
func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	if err := os.MkdirAll(h.cfg.TemplatePath, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to prepare template", err)
	}

	templatePath := filepath.Join(h.cfg.TemplatePath, service.TemplateFilename)
	if err := h.templateService.GenerateTemplate(templatePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate template", err)
	}

	return c.Download(templatePath, service.TemplateFilename)
}

func (h *ImportHandler) GetSessions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	role := c.Locals("role").(string)

	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	// Admin can see all sessions, user can only see their own
	filterUserID := 0
	if role != "admin" {
		filterUserID = userID
	}

	sessions, total, err := h.sessionRepo.GetSessions(params.Limit, offset, filterUserID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sessions", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Sessions retrieved successfully", fiber.Map{
		"sessions": sessions,
	}, pagination)
}

func (h *ImportHandler) GetSessionDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	session, err := h.sessionRepo.GetSessionByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	return utils.SuccessResponse(c, "Session retrieved successfully", session)
}

// GetProgress returns the last cached progress percentage for a client id,
// for dashboards that poll instead of listening on the socket.
func (h *ImportHandler) GetProgress(c *fiber.Ctx) error {
	clientID := c.Params("client_id")

	if h.rdb == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Progress cache is not available", nil)
	}

	value, err := h.rdb.Get(c.Context(), fmt.Sprintf("import:progress:%s", clientID)).Result()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No progress recorded for client", nil)
	}

	return utils.SuccessResponse(c, "Progress retrieved successfully", fiber.Map{
		"client_id":  clientID,
		"percentage": value,
	})
}
