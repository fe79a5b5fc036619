package repository

import (
	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"

	"github.com/jmoiron/sqlx"
)

type ImportSessionRepository struct {
	db *sqlx.DB
}

func NewImportSessionRepository(db *sqlx.DB) *ImportSessionRepository {
	return &ImportSessionRepository{db: db}
}

func (r *ImportSessionRepository) CreateSession(session *models.ImportSession) error {
	query := `INSERT INTO import_sessions
	          (session_code, user_id, filename, file_path, client_id, status)
	          VALUES (:session_code, :user_id, :filename, :file_path, :client_id, :status)`
	result, err := r.db.NamedExec(query, session)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	session.ID = int(id)
	return nil
}

func (r *ImportSessionRepository) UpdateSessionStatus(id int, status string) error {
	query := "UPDATE import_sessions SET status = ? WHERE id = ?"
	_, err := r.db.Exec(query, status, id)
	return err
}

// ApplyResult stores the terminal counters of a finished import run.
func (r *ImportSessionRepository) ApplyResult(id int, result *models.ImportResult, status string) error {
	query := `UPDATE import_sessions SET
	          total_rows = ?, success_rows = ?, failed_rows = ?,
	          created_rows = ?, updated_rows = ?, status = ?
	          WHERE id = ?`
	_, err := r.db.Exec(query,
		result.Total, result.Success, result.Failed,
		result.Created, result.Updated, status, id)
	return err
}

func (r *ImportSessionRepository) MarkFailed(id int, message string) error {
	query := "UPDATE import_sessions SET status = ?, error_message = ? WHERE id = ?"
	_, err := r.db.Exec(query, models.ImportStatusFailed, message, id)
	return err
}

func (r *ImportSessionRepository) GetSessions(limit, offset, filterUserID int) ([]models.ImportSession, int, error) {
	var sessions []models.ImportSession
	var total int

	whereClause := ""
	args := []interface{}{}

	if filterUserID > 0 {
		whereClause = "WHERE user_id = ?"
		args = append(args, filterUserID)
	}

	countQuery := "SELECT COUNT(*) FROM import_sessions " + whereClause
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM import_sessions " + whereClause + " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	if err := r.db.Select(&sessions, query, args...); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *ImportSessionRepository) GetSessionByID(id int) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE id = ? LIMIT 1"
	if err := r.db.Get(&session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportSessionRepository) GetSessionByCode(code string) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE session_code = ? LIMIT 1"
	if err := r.db.Get(&session, query, code); err != nil {
		return nil, err
	}
	return &session, nil
}
