package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/config"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/repository"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/service"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/utils"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/ws"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ImportTaskHandler runs queued spreadsheet imports. Progress events are
// published through the Redis bridge so the web process can relay them to
// its websocket clients.
type ImportTaskHandler struct {
	importService *service.ImportService
	sessionRepo   *repository.ImportSessionRepository
	log           *logrus.Logger
}

func NewImportTaskHandler(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *ImportTaskHandler {
	precatorioRepo := repository.NewPrecatorioRepository(db)
	entidadeRepo := repository.NewEntidadeRepository(db)
	tribunalRepo := repository.NewTribunalRepository(db)

	importService := service.NewImportService(
		precatorioRepo, entidadeRepo, tribunalRepo,
		ws.NewRedisPublisher(rdb), rdb,
	)

	return &ImportTaskHandler{
		importService: importService,
		sessionRepo:   repository.NewImportSessionRepository(db),
		log:           utils.GetLogger(),
	}
}

func (h *ImportTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload ImportTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log := h.log.WithFields(logrus.Fields{
		"session_code": payload.SessionCode,
		"session_id":   payload.SessionID,
	})
	log.Info("starting queued import")

	session, err := h.sessionRepo.GetSessionByID(payload.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if session.Status == models.ImportStatusCompleted || session.Status == models.ImportStatusFailed {
		log.WithField("status", session.Status).Info("session already finished, skipping")
		return nil
	}

	if err := h.sessionRepo.UpdateSessionStatus(payload.SessionID, models.ImportStatusProcessing); err != nil {
		log.WithError(err).Warn("update session status")
	}

	result, err := h.importService.ImportFile(payload.FilePath, payload.ClientID)
	if err != nil {
		h.sessionRepo.MarkFailed(payload.SessionID, err.Error())
		return fmt.Errorf("import failed: %w", err)
	}

	if err := h.sessionRepo.ApplyResult(payload.SessionID, result, models.ImportStatusCompleted); err != nil {
		log.WithError(err).Warn("persist import result")
	}

	log.WithFields(logrus.Fields{
		"total":   result.Total,
		"success": result.Success,
		"failed":  result.Failed,
	}).Info("queued import finished")

	return nil
}
