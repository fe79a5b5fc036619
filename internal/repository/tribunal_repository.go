package repository

import (
	"fmt"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"

	"github.com/jmoiron/sqlx"
)

type TribunalRepository struct {
	db *sqlx.DB
}

func NewTribunalRepository(db *sqlx.DB) *TribunalRepository {
	return &TribunalRepository{db: db}
}

func (r *TribunalRepository) FindAll(limit, offset int, search string) ([]models.Tribunal, int, error) {
	var tribunais []models.Tribunal
	var total int

	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE sigla LIKE ? OR nome LIKE ?"
		searchPattern := "%" + search + "%"
		args = append(args, searchPattern, searchPattern)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tribunais %s", whereClause)
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT * FROM tribunais %s ORDER BY sigla LIMIT ? OFFSET ?", whereClause)
	args = append(args, limit, offset)
	if err := r.db.Select(&tribunais, query, args...); err != nil {
		return nil, 0, err
	}

	return tribunais, total, nil
}

func (r *TribunalRepository) FindByID(id int) (*models.Tribunal, error) {
	var tribunal models.Tribunal
	query := "SELECT * FROM tribunais WHERE id = ? LIMIT 1"
	if err := r.db.Get(&tribunal, query, id); err != nil {
		return nil, err
	}
	return &tribunal, nil
}

func (r *TribunalRepository) TribunalExists(id int) (bool, error) {
	var count int
	if err := r.db.Get(&count, "SELECT COUNT(1) FROM tribunais WHERE id = ?", id); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TribunalRepository) Create(tribunal *models.Tribunal) error {
	query := `INSERT INTO tribunais (sigla, nome, uf) VALUES (:sigla, :nome, :uf)`
	result, err := r.db.NamedExec(query, tribunal)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	tribunal.ID = int(id)
	return nil
}
