package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"

	"github.com/jmoiron/sqlx"
)

type PrecatorioRepository struct {
	db *sqlx.DB
}

func NewPrecatorioRepository(db *sqlx.DB) *PrecatorioRepository {
	return &PrecatorioRepository{db: db}
}

// FindByNaturalKey looks up a precatorio by its unique
// (tribunal_id, numero_processo) pair. Returns (nil, nil) when absent.
func (r *PrecatorioRepository) FindByNaturalKey(tribunalID int, numeroProcesso string) (*models.Precatorio, error) {
	var p models.Precatorio
	query := "SELECT * FROM precatorios WHERE tribunal_id = ? AND numero_processo = ? LIMIT 1"
	err := r.db.Get(&p, query, tribunalID, numeroProcesso)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PrecatorioRepository) FindByID(id int64) (*models.Precatorio, error) {
	var p models.Precatorio
	query := "SELECT * FROM precatorios WHERE id = ? LIMIT 1"
	if err := r.db.Get(&p, query, id); err != nil {
		return nil, err
	}

	movimentacoes, err := r.findMovimentacoes(id)
	if err != nil {
		return nil, err
	}
	p.Movimentacoes = movimentacoes
	return &p, nil
}

func (r *PrecatorioRepository) FindAll(limit, offset int, search string) ([]models.Precatorio, int, error) {
	var precatorios []models.Precatorio
	var total int

	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE numero_processo LIKE ? OR requerente LIKE ?"
		searchPattern := "%" + search + "%"
		args = append(args, searchPattern, searchPattern)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM precatorios %s", whereClause)
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM precatorios %s
		ORDER BY tribunal_id, numero_processo
		LIMIT ? OFFSET ?`, whereClause)
	args = append(args, limit, offset)
	if err := r.db.Select(&precatorios, query, args...); err != nil {
		return nil, 0, err
	}

	return precatorios, total, nil
}

func (r *PrecatorioRepository) Create(p *models.Precatorio) error {
	query := `INSERT INTO precatorios
	          (entidade_id, tribunal_id, numero_processo, natureza,
	           valor_acao, valor_atualizado, data_distribuicao, data_atualizacao,
	           vara, comarca, requerente, advogado, observacao, ano_orcamento)
	          VALUES (:entidade_id, :tribunal_id, :numero_processo, :natureza,
	           :valor_acao, :valor_atualizado, :data_distribuicao, :data_atualizacao,
	           :vara, :comarca, :requerente, :advogado, :observacao, :ano_orcamento)`
	result, err := r.db.NamedExec(query, p)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	p.ID = id

	return r.insertMovimentacoes(p.ID, p.Movimentacoes)
}

// Update rewrites the scalar fields and replaces the movimentação list
// wholesale: delete everything, recreate from the incoming record. No diff.
func (r *PrecatorioRepository) Update(p *models.Precatorio) error {
	query := `UPDATE precatorios SET
	          entidade_id = :entidade_id, tribunal_id = :tribunal_id,
	          numero_processo = :numero_processo, natureza = :natureza,
	          valor_acao = :valor_acao, valor_atualizado = :valor_atualizado,
	          data_distribuicao = :data_distribuicao, data_atualizacao = :data_atualizacao,
	          vara = :vara, comarca = :comarca, requerente = :requerente,
	          advogado = :advogado, observacao = :observacao, ano_orcamento = :ano_orcamento
	          WHERE id = :id`
	if _, err := r.db.NamedExec(query, p); err != nil {
		return err
	}

	if _, err := r.db.Exec("DELETE FROM movimentacoes WHERE precatorio_id = ?", p.ID); err != nil {
		return err
	}
	return r.insertMovimentacoes(p.ID, p.Movimentacoes)
}

func (r *PrecatorioRepository) insertMovimentacoes(precatorioID int64, movimentacoes []models.Movimentacao) error {
	if len(movimentacoes) == 0 {
		return nil
	}

	for i := range movimentacoes {
		movimentacoes[i].PrecatorioID = precatorioID
	}

	query := `INSERT INTO movimentacoes (precatorio_id, seq, data, valor, tipo)
	          VALUES (:precatorio_id, :seq, :data, :valor, :tipo)`
	_, err := r.db.NamedExec(query, movimentacoes)
	return err
}

func (r *PrecatorioRepository) findMovimentacoes(precatorioID int64) ([]models.Movimentacao, error) {
	var movimentacoes []models.Movimentacao
	query := "SELECT * FROM movimentacoes WHERE precatorio_id = ? ORDER BY seq"
	err := r.db.Select(&movimentacoes, query, precatorioID)
	return movimentacoes, err
}
