package models

import "time"

// Natureza values accepted on import.
const (
	NaturezaAlimentar = "ALIMENTAR"
	NaturezaComum     = "COMUM"
)

// NaturezaValues lists the accepted natureza codes in display order.
var NaturezaValues = []string{NaturezaAlimentar, NaturezaComum}

// Movimentacao tipo allow-list.
const (
	MovimentacaoDeposito     = "DEPOSITO"
	MovimentacaoLevantamento = "LEVANTAMENTO"
	MovimentacaoAtualizacao  = "ATUALIZACAO"
	MovimentacaoPagamento    = "PAGAMENTO"
	MovimentacaoCompensacao  = "COMPENSACAO"
)

var MovimentacaoTipos = []string{
	MovimentacaoDeposito,
	MovimentacaoLevantamento,
	MovimentacaoAtualizacao,
	MovimentacaoPagamento,
	MovimentacaoCompensacao,
}

// Precatorio is one judicial payment order. The pair
// (tribunal_id, numero_processo) is unique across the table; imports use it
// to decide between create and update.
type Precatorio struct {
	ID             int64  `db:"id" json:"id"`
	EntidadeID     int    `db:"entidade_id" json:"entidade_id"`
	TribunalID     int    `db:"tribunal_id" json:"tribunal_id"`
	NumeroProcesso string `db:"numero_processo" json:"numero_processo"`
	Natureza       string `db:"natureza" json:"natureza"`

	// Optional fields. Dates are stored normalized: YYYY-MM-DD for dates,
	// YYYY-MM-DDTHH:MM:00 when a time component was supplied.
	ValorAcao        *float64 `db:"valor_acao" json:"valor_acao,omitempty"`
	ValorAtualizado  *float64 `db:"valor_atualizado" json:"valor_atualizado,omitempty"`
	DataDistribuicao *string  `db:"data_distribuicao" json:"data_distribuicao,omitempty"`
	DataAtualizacao  *string  `db:"data_atualizacao" json:"data_atualizacao,omitempty"`
	Vara             *string  `db:"vara" json:"vara,omitempty"`
	Comarca          *string  `db:"comarca" json:"comarca,omitempty"`
	Requerente       *string  `db:"requerente" json:"requerente,omitempty"`
	Advogado         *string  `db:"advogado" json:"advogado,omitempty"`
	Observacao       *string  `db:"observacao" json:"observacao,omitempty"`
	AnoOrcamento     *int     `db:"ano_orcamento" json:"ano_orcamento,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Movimentacoes []Movimentacao `db:"-" json:"movimentacoes"`
}

// Movimentacao is one dated monetary event on a precatorio timeline,
// rebuilt wholesale on every import of the parent row.
type Movimentacao struct {
	ID           int64   `db:"id" json:"id"`
	PrecatorioID int64   `db:"precatorio_id" json:"precatorio_id"`
	Seq          int     `db:"seq" json:"seq"`
	Data         string  `db:"data" json:"data"`
	Valor        float64 `db:"valor" json:"valor"`
	Tipo         string  `db:"tipo" json:"tipo"`
}
