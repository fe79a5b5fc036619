package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeImportPrecatorio = "precatorio:import"

type ImportTaskPayload struct {
	SessionID   int    `json:"session_id"`
	SessionCode string `json:"session_code"`
	FilePath    string `json:"file_path"`
	ClientID    string `json:"client_id"`
}

func NewImportTask(payload ImportTaskPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeImportPrecatorio, data), nil
}
