package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The row normalizer maps the literal header text of an uploaded sheet onto a
// canonical key space so the importer tolerates accent, case and spacing
// variance ("Número  Processo" and "numero processo" both become
// "numero_processo"). Two differently-spelled headers that normalize to the
// same key silently collide; that is an accepted trade-off.

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeHeader(header string) string {
	lowered := strings.ToLower(header)
	stripped, _, err := transform.String(deaccent, lowered)
	if err != nil {
		stripped = lowered
	}
	return strings.Join(strings.Fields(stripped), "_")
}

// normalizeRow builds an ImportRow from one sheet row. Headers that normalize
// to the empty string are dropped, as are blank cells, so absence is simply a
// missing key.
func normalizeRow(headers []string, cells []string) models.ImportRow {
	row := make(models.ImportRow, len(headers))
	for i, header := range headers {
		key := normalizeHeader(header)
		if key == "" {
			continue
		}
		if i >= len(cells) {
			continue
		}
		if strings.TrimSpace(cells[i]) == "" {
			continue
		}
		row[key] = cells[i]
	}
	return row
}

var movimentacaoKeyRe = regexp.MustCompile(`^movimentacao(\d+)_(data|valor|tipo)$`)

type movimentacaoSlot struct {
	data  string
	valor string
	tipo  string
}

// extractMovimentacoes rebuilds the movimentação list from the repeating
// movimentacao<N>_{data,valor,tipo} column family. A slot is emitted only if
// all three fields are present and parse cleanly; incomplete or unparseable
// slots are dropped without raising a row error. The result is sorted by slot
// number regardless of column order in the sheet.
func extractMovimentacoes(row models.ImportRow, rowNum int) []models.Movimentacao {
	slots := make(map[int]*movimentacaoSlot)
	for key, raw := range row {
		m := movimentacaoKeyRe.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			continue
		}

		slot, ok := slots[n]
		if !ok {
			slot = &movimentacaoSlot{}
			slots[n] = slot
		}
		switch m[2] {
		case "data":
			slot.data = raw
		case "valor":
			slot.valor = raw
		case "tipo":
			slot.tipo = raw
		}
	}

	numbers := make([]int, 0, len(slots))
	for n := range slots {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var movimentacoes []models.Movimentacao
	for _, n := range numbers {
		slot := slots[n]

		field := "movimentacao" + strconv.Itoa(n)
		data, ok, err := parseDateCell(slot.data, field+"_data", rowNum, false)
		if !ok || err != nil {
			continue
		}
		valor, ok, err := parseDecimalCell(slot.valor, field+"_valor", rowNum)
		if !ok || err != nil {
			continue
		}
		tipo, ok, err := parseEnumCell(slot.tipo, field+"_tipo", rowNum, models.MovimentacaoTipos)
		if !ok || err != nil {
			continue
		}

		movimentacoes = append(movimentacoes, models.Movimentacao{
			Seq:   n,
			Data:  data,
			Valor: valor,
			Tipo:  tipo,
		})
	}

	return movimentacoes
}
