package service

import (
	"fmt"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"
)

// EntidadeChecker and TribunalChecker answer the two referential existence
// checks the record builder runs before a row may be persisted.
type EntidadeChecker interface {
	EntidadeExists(id int) (bool, error)
}

type TribunalChecker interface {
	TribunalExists(id int) (bool, error)
}

// RecordBuilder turns a normalized import row into a fully validated
// Precatorio. Required fields (the natural key, the debtor reference and the
// natureza) fail the row when missing or unparseable; optional fields that
// fail to parse are treated as absent.
type RecordBuilder struct {
	entidades EntidadeChecker
	tribunais TribunalChecker
}

func NewRecordBuilder(entidades EntidadeChecker, tribunais TribunalChecker) *RecordBuilder {
	return &RecordBuilder{entidades: entidades, tribunais: tribunais}
}

func (b *RecordBuilder) Build(row models.ImportRow, rowNum int) (*models.Precatorio, error) {
	entidadeID, err := b.requiredInt(row, "entidade_id", rowNum)
	if err != nil {
		return nil, err
	}
	tribunalID, err := b.requiredInt(row, "tribunal_id", rowNum)
	if err != nil {
		return nil, err
	}

	numeroProcesso, ok := parseStringCell(row["numero_processo"])
	if !ok {
		return nil, rowFieldError(rowNum, "numero_processo", "is required")
	}

	natureza, ok, err := parseEnumCell(row["natureza"], "natureza", rowNum, models.NaturezaValues)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rowFieldError(rowNum, "natureza", "is required")
	}

	exists, err := b.entidades.EntidadeExists(entidadeID)
	if err != nil {
		return nil, fmt.Errorf("Row %d: check entidade %d: %w", rowNum, entidadeID, err)
	}
	if !exists {
		return nil, fmt.Errorf("Row %d: entidade %d not found", rowNum, entidadeID)
	}

	exists, err = b.tribunais.TribunalExists(tribunalID)
	if err != nil {
		return nil, fmt.Errorf("Row %d: check tribunal %d: %w", rowNum, tribunalID, err)
	}
	if !exists {
		return nil, fmt.Errorf("Row %d: tribunal %d not found", rowNum, tribunalID)
	}

	p := &models.Precatorio{
		EntidadeID:     entidadeID,
		TribunalID:     tribunalID,
		NumeroProcesso: numeroProcesso,
		Natureza:       natureza,
	}

	p.ValorAcao = optionalDecimal(row, "valor_acao", rowNum)
	p.ValorAtualizado = optionalDecimal(row, "valor_atualizado", rowNum)
	p.DataDistribuicao = optionalDate(row, "data_distribuicao", rowNum, false)
	p.DataAtualizacao = optionalDate(row, "data_atualizacao", rowNum, true)
	p.Vara = optionalString(row, "vara")
	p.Comarca = optionalString(row, "comarca")
	p.Requerente = optionalString(row, "requerente")
	p.Advogado = optionalString(row, "advogado")
	p.Observacao = optionalString(row, "observacao")
	if value, ok, err := parseIntCell(row["ano_orcamento"], "ano_orcamento", rowNum); ok && err == nil {
		p.AnoOrcamento = &value
	}

	p.Movimentacoes = extractMovimentacoes(row, rowNum)
	if err := checkDuplicateTipos(p.Movimentacoes, rowNum); err != nil {
		return nil, err
	}

	return p, nil
}

func (b *RecordBuilder) requiredInt(row models.ImportRow, field string, rowNum int) (int, error) {
	value, ok, err := parseIntCell(row[field], field, rowNum)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, rowFieldError(rowNum, field, "is required")
	}
	return value, nil
}

func optionalString(row models.ImportRow, field string) *string {
	if value, ok := parseStringCell(row[field]); ok {
		return &value
	}
	return nil
}

func optionalDecimal(row models.ImportRow, field string, rowNum int) *float64 {
	if value, ok, err := parseDecimalCell(row[field], field, rowNum); ok && err == nil {
		return &value
	}
	return nil
}

func optionalDate(row models.ImportRow, field string, rowNum int, withTime bool) *string {
	if value, ok, err := parseDateCell(row[field], field, rowNum, withTime); ok && err == nil {
		return &value
	}
	return nil
}

func checkDuplicateTipos(movimentacoes []models.Movimentacao, rowNum int) error {
	seen := make(map[string]bool, len(movimentacoes))
	for _, m := range movimentacoes {
		if seen[m.Tipo] {
			return fmt.Errorf("Row %d: duplicate movimentacao tipo %q", rowNum, m.Tipo)
		}
		seen[m.Tipo] = true
	}
	return nil
}
