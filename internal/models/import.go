package models

import "time"

// ImportRow is one spreadsheet row after header normalization: canonical
// column key to raw cell text. Cells that are missing or blank are simply
// absent from the map.
type ImportRow map[string]string

// ImportPreview carries the human-identifying fields of the row currently
// being processed, shown live on the import dashboard.
type ImportPreview struct {
	NumeroProcesso string `json:"numero_processo,omitempty"`
	Requerente     string `json:"requerente,omitempty"`
}

// ImportProgress is the payload of one "import-progress" event.
type ImportProgress struct {
	Total      int            `json:"total"`
	Current    int            `json:"current"`
	Percentage int            `json:"percentage"`
	Status     string         `json:"status"`
	CurrentRow int            `json:"current_row,omitempty"`
	Preview    *ImportPreview `json:"preview,omitempty"`
}

// ImportRowError records one failed row. Row is the 1-based spreadsheet row
// number (header included), Data the raw row as uploaded.
type ImportRowError struct {
	Row   int       `json:"row"`
	Error string    `json:"error"`
	Data  ImportRow `json:"data,omitempty"`
}

// ImportResult is the terminal summary of one import run, returned to the
// caller and pushed as the "import-complete" event.
type ImportResult struct {
	Total   int              `json:"total"`
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Errors  []ImportRowError `json:"errors"`
}

// Import session statuses.
const (
	ImportStatusQueued     = "queued"
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)

// ImportSession is the persisted record of one import run.
type ImportSession struct {
	ID           int       `db:"id" json:"id"`
	SessionCode  string    `db:"session_code" json:"session_code"`
	UserID       int       `db:"user_id" json:"user_id"`
	Filename     string    `db:"filename" json:"filename"`
	FilePath     string    `db:"file_path" json:"file_path"`
	ClientID     string    `db:"client_id" json:"client_id"`
	TotalRows    int       `db:"total_rows" json:"total_rows"`
	SuccessRows  int       `db:"success_rows" json:"success_rows"`
	FailedRows   int       `db:"failed_rows" json:"failed_rows"`
	CreatedRows  int       `db:"created_rows" json:"created_rows"`
	UpdatedRows  int       `db:"updated_rows" json:"updated_rows"`
	Status       string    `db:"status" json:"status"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
