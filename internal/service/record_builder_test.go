package service

import (
	"testing"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefs struct {
	entidades map[int]bool
	tribunais map[int]bool
}

func (f fakeRefs) EntidadeExists(id int) (bool, error) { return f.entidades[id], nil }
func (f fakeRefs) TribunalExists(id int) (bool, error) { return f.tribunais[id], nil }

func newTestBuilder() *RecordBuilder {
	refs := fakeRefs{
		entidades: map[int]bool{1: true, 2: true},
		tribunais: map[int]bool{1: true},
	}
	return NewRecordBuilder(refs, refs)
}

func validRow() models.ImportRow {
	return models.ImportRow{
		"entidade_id":     "1",
		"tribunal_id":     "1",
		"numero_processo": "0001234-56.2020.8.26.0053",
		"natureza":        "alimentar",
	}
}

func TestBuildMinimalRow(t *testing.T) {
	p, err := newTestBuilder().Build(validRow(), 2)
	require.NoError(t, err)

	assert.Equal(t, 1, p.EntidadeID)
	assert.Equal(t, 1, p.TribunalID)
	assert.Equal(t, "0001234-56.2020.8.26.0053", p.NumeroProcesso)
	assert.Equal(t, models.NaturezaAlimentar, p.Natureza)
	assert.Nil(t, p.ValorAcao)
	assert.Nil(t, p.DataDistribuicao)
	assert.Empty(t, p.Movimentacoes)
}

func TestBuildFullRow(t *testing.T) {
	row := validRow()
	row["valor_acao"] = "1.234,56"
	row["valor_atualizado"] = "2.000,00"
	row["data_distribuicao"] = "05/03/2020"
	row["data_atualizacao"] = "10/01/2024 14:30"
	row["vara"] = "1ª Vara de Fazenda Pública"
	row["comarca"] = "São Paulo"
	row["requerente"] = "João da Silva"
	row["advogado"] = "Maria Souza"
	row["observacao"] = "obs"
	row["ano_orcamento"] = "2025"
	row["movimentacao1_data"] = "10/05/2021"
	row["movimentacao1_valor"] = "500,00"
	row["movimentacao1_tipo"] = "DEPOSITO"

	p, err := newTestBuilder().Build(row, 2)
	require.NoError(t, err)

	require.NotNil(t, p.ValorAcao)
	assert.InDelta(t, 1234.56, *p.ValorAcao, 0.0001)
	require.NotNil(t, p.DataDistribuicao)
	assert.Equal(t, "2020-03-05", *p.DataDistribuicao)
	require.NotNil(t, p.DataAtualizacao)
	assert.Equal(t, "2024-01-10T14:30:00", *p.DataAtualizacao)
	require.NotNil(t, p.AnoOrcamento)
	assert.Equal(t, 2025, *p.AnoOrcamento)
	require.Len(t, p.Movimentacoes, 1)
	assert.Equal(t, "DEPOSITO", p.Movimentacoes[0].Tipo)
}

func TestBuildRequiredFields(t *testing.T) {
	builder := newTestBuilder()

	for _, field := range []string{"entidade_id", "tribunal_id", "numero_processo", "natureza"} {
		row := validRow()
		delete(row, field)

		_, err := builder.Build(row, 5)
		require.Error(t, err, "missing %s", field)
		assert.Contains(t, err.Error(), "Row 5")
		assert.Contains(t, err.Error(), field)
	}
}

func TestBuildInvalidNatureza(t *testing.T) {
	row := validRow()
	row["natureza"] = "ESPECIAL"

	_, err := newTestBuilder().Build(row, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALIMENTAR, COMUM")
}

func TestBuildMissingReferences(t *testing.T) {
	builder := newTestBuilder()

	row := validRow()
	row["entidade_id"] = "99"
	_, err := builder.Build(row, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entidade 99 not found")

	row = validRow()
	row["tribunal_id"] = "7"
	_, err = builder.Build(row, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tribunal 7 not found")
}

func TestBuildOptionalParseFailuresAreAbsent(t *testing.T) {
	row := validRow()
	row["valor_acao"] = "not a number"
	row["data_distribuicao"] = "not a date"
	row["ano_orcamento"] = "abc"

	p, err := newTestBuilder().Build(row, 2)
	require.NoError(t, err)
	assert.Nil(t, p.ValorAcao)
	assert.Nil(t, p.DataDistribuicao)
	assert.Nil(t, p.AnoOrcamento)
}

func TestBuildDuplicateMovimentacaoTipo(t *testing.T) {
	row := validRow()
	row["movimentacao1_data"] = "10/05/2021"
	row["movimentacao1_valor"] = "500,00"
	row["movimentacao1_tipo"] = "DEPOSITO"
	row["movimentacao2_data"] = "12/07/2022"
	row["movimentacao2_valor"] = "250,00"
	row["movimentacao2_tipo"] = "deposito"

	_, err := newTestBuilder().Build(row, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate movimentacao tipo "DEPOSITO"`)
}
