package models

import "time"

// Entidade is a public debtor entity (municipality, state body, autarchy)
// against which precatorios are issued.
type Entidade struct {
	ID        int       `db:"id" json:"id"`
	Nome      string    `db:"nome" json:"nome"`
	CNPJ      string    `db:"cnpj" json:"cnpj"`
	Esfera    string    `db:"esfera" json:"esfera"` // FEDERAL, ESTADUAL, MUNICIPAL
	UF        string    `db:"uf" json:"uf"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Tribunal struct {
	ID        int       `db:"id" json:"id"`
	Sigla     string    `db:"sigla" json:"sigla"`
	Nome      string    `db:"nome" json:"nome"`
	UF        string    `db:"uf" json:"uf"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
