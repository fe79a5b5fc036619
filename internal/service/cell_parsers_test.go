package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseStringCell(t *testing.T) {
	value, ok := parseStringCell("  Fazenda Pública  ")
	assert.True(t, ok)
	assert.Equal(t, "Fazenda Pública", value)

	_, ok = parseStringCell("   ")
	assert.False(t, ok)

	_, ok = parseStringCell("")
	assert.False(t, ok)
}

func TestParseIntCell(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		present bool
		wantErr bool
	}{
		{"plain", "42", 42, true, false},
		{"thousands dot", "2.025", 2025, true, false},
		{"currency prefix", "R$ 1.234", 1234, true, false},
		{"negative", "-7", -7, true, false},
		{"blank is absent", "   ", 0, false, false},
		{"letters fail", "abc", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok, err := parseIntCell(tt.raw, "ano_orcamento", 3)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Row 3")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestParseDecimalCell(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		present bool
		wantErr bool
	}{
		{"brazilian format", "1.234,56", 1234.56, true, false},
		{"brazilian no thousands", "500,00", 500, true, false},
		{"brazilian millions", "1.234.567,89", 1234567.89, true, false},
		{"native dot decimal", "1234.56", 1234.56, true, false},
		{"plain integer", "42", 42, true, false},
		{"blank is absent", "", 0, false, false},
		{"garbage fails", "abc", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok, err := parseDecimalCell(tt.raw, "valor_acao", 2)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valor_acao")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.present, ok)
			assert.InDelta(t, tt.want, value, 0.0001)
		})
	}
}

func TestParseDateCellText(t *testing.T) {
	value, ok, err := parseDateCell("05/03/2024", "data_distribuicao", 2, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-03-05", value)

	// Single-digit day and month are fine.
	value, _, err = parseDateCell("5/3/2024", "data_distribuicao", 2, false)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", value)

	// The time component is only kept when asked for.
	value, _, err = parseDateCell("10/01/2024 14:30", "data_atualizacao", 2, true)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10T14:30:00", value)

	value, _, err = parseDateCell("10/01/2024 14:30", "data_distribuicao", 2, false)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", value)
}

func TestParseDateCellBounds(t *testing.T) {
	// Day and month bounds are coarse: 31/02 passes, days-per-month is not
	// checked.
	value, ok, err := parseDateCell("31/02/2024", "data_distribuicao", 4, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-02-31", value)

	_, _, err = parseDateCell("32/01/2024", "data_distribuicao", 4, false)
	require.Error(t, err)

	_, _, err = parseDateCell("01/13/2024", "data_distribuicao", 4, false)
	require.Error(t, err)

	_, _, err = parseDateCell("10/01/2024 25:00", "data_atualizacao", 4, true)
	require.Error(t, err)
}

func TestParseDateCellISO(t *testing.T) {
	value, ok, err := parseDateCell("2024-03-05", "data_distribuicao", 2, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-03-05", value)

	value, _, err = parseDateCell("2024-03-05 14:30:00", "data_atualizacao", 2, true)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05T14:30:00", value)
}

func TestParseDateCellSerial(t *testing.T) {
	expected, err := excelize.ExcelDateToTime(45000, false)
	require.NoError(t, err)

	value, ok, err := parseDateCell("45000", "data_distribuicao", 2, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, expected.Format("2006-01-02"), value)

	// A fractional serial carries a time component.
	expectedTime, err := excelize.ExcelDateToTime(45000.5, false)
	require.NoError(t, err)

	value, _, err = parseDateCell("45000.5", "data_atualizacao", 2, true)
	require.NoError(t, err)
	assert.Equal(t, expectedTime.Format("2006-01-02T15:04:00"), value)
}

func TestParseDateCellInvalid(t *testing.T) {
	_, _, err := parseDateCell("not a date", "data_distribuicao", 7, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Row 7")
	assert.Contains(t, err.Error(), "data_distribuicao")

	_, ok, err := parseDateCell("  ", "data_distribuicao", 7, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseEnumCell(t *testing.T) {
	allowed := []string{"ALIMENTAR", "COMUM"}

	value, ok, err := parseEnumCell("alimentar", "natureza", 2, allowed)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ALIMENTAR", value)

	value, _, err = parseEnumCell("  Comum  ", "natureza", 2, allowed)
	require.NoError(t, err)
	assert.Equal(t, "COMUM", value)

	_, _, err = parseEnumCell("OUTRA", "natureza", 2, allowed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALIMENTAR, COMUM")

	_, ok, err = parseEnumCell("", "natureza", 2, allowed)
	require.NoError(t, err)
	assert.False(t, ok)
}
