package repository

import (
	"fmt"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"

	"github.com/jmoiron/sqlx"
)

type EntidadeRepository struct {
	db *sqlx.DB
}

func NewEntidadeRepository(db *sqlx.DB) *EntidadeRepository {
	return &EntidadeRepository{db: db}
}

func (r *EntidadeRepository) FindAll(limit, offset int, search string) ([]models.Entidade, int, error) {
	var entidades []models.Entidade
	var total int

	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE nome LIKE ? OR cnpj LIKE ?"
		searchPattern := "%" + search + "%"
		args = append(args, searchPattern, searchPattern)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM entidades %s", whereClause)
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT * FROM entidades %s ORDER BY nome LIMIT ? OFFSET ?", whereClause)
	args = append(args, limit, offset)
	if err := r.db.Select(&entidades, query, args...); err != nil {
		return nil, 0, err
	}

	return entidades, total, nil
}

func (r *EntidadeRepository) FindByID(id int) (*models.Entidade, error) {
	var entidade models.Entidade
	query := "SELECT * FROM entidades WHERE id = ? LIMIT 1"
	if err := r.db.Get(&entidade, query, id); err != nil {
		return nil, err
	}
	return &entidade, nil
}

func (r *EntidadeRepository) EntidadeExists(id int) (bool, error) {
	var count int
	if err := r.db.Get(&count, "SELECT COUNT(1) FROM entidades WHERE id = ?", id); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EntidadeRepository) Create(entidade *models.Entidade) error {
	query := `INSERT INTO entidades (nome, cnpj, esfera, uf, is_active)
	          VALUES (:nome, :cnpj, :esfera, :uf, :is_active)`
	result, err := r.db.NamedExec(query, entidade)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	entidade.ID = int(id)
	return nil
}

func (r *EntidadeRepository) Update(entidade *models.Entidade) error {
	query := `UPDATE entidades SET nome = :nome, cnpj = :cnpj, esfera = :esfera,
	          uf = :uf, is_active = :is_active WHERE id = :id`
	_, err := r.db.NamedExec(query, entidade)
	return err
}
