package service

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeStore struct {
	records map[string]*models.Precatorio
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*models.Precatorio)}
}

func naturalKey(tribunalID int, numero string) string {
	return fmt.Sprintf("%d|%s", tribunalID, numero)
}

func (s *fakeStore) FindByNaturalKey(tribunalID int, numero string) (*models.Precatorio, error) {
	p, ok := s.records[naturalKey(tribunalID, numero)]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (s *fakeStore) Create(p *models.Precatorio) error {
	s.nextID++
	p.ID = s.nextID
	s.records[naturalKey(p.TribunalID, p.NumeroProcesso)] = p
	return nil
}

func (s *fakeStore) Update(p *models.Precatorio) error {
	s.records[naturalKey(p.TribunalID, p.NumeroProcesso)] = p
	return nil
}

type recordedEvent struct {
	event    string
	clientID string
	data     interface{}
}

type fakePublisher struct {
	events []recordedEvent
}

func (p *fakePublisher) Emit(event string, data interface{}) {
	p.events = append(p.events, recordedEvent{event: event, data: data})
}

func (p *fakePublisher) EmitTo(clientID, event string, data interface{}) {
	p.events = append(p.events, recordedEvent{event: event, clientID: clientID, data: data})
}

func (p *fakePublisher) byEvent(event string) []recordedEvent {
	var out []recordedEvent
	for _, e := range p.events {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

func newTestImportService(store *fakeStore, pub *fakePublisher) *ImportService {
	refs := fakeRefs{
		entidades: map[int]bool{1: true, 2: true},
		tribunais: map[int]bool{1: true},
	}
	return NewImportService(store, refs, refs, pub, nil)
}

type sheetDef struct {
	name string
	rows [][]interface{}
}

func buildWorkbook(t *testing.T, sheets ...sheetDef) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	for _, sheet := range sheets {
		_, err := f.NewSheet(sheet.name)
		require.NoError(t, err)
		for r, row := range sheet.rows {
			for c, value := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet.name, cell, value))
			}
		}
	}
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

var importHeaders = []interface{}{
	"Entidade ID", "Tribunal ID", "Número Processo", "Natureza", "Valor Ação",
	"Movimentação1 Data", "Movimentação1 Valor", "Movimentação1 Tipo",
}

func importRow(numero, natureza, valor string) []interface{} {
	return []interface{}{
		"1", "1", numero, natureza, valor,
		"10/05/2021", "500,00", "DEPOSITO",
	}
}

func TestImportCreatesRecords(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := newTestImportService(store, pub)

	workbook := buildWorkbook(t, sheetDef{name: "Precatorios", rows: [][]interface{}{
		importHeaders,
		importRow("0001-01", "ALIMENTAR", "1.234,56"),
		importRow("0001-02", "comum", "2.000,00"),
	}})

	result, err := svc.Import(workbook, "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)

	p, err := store.FindByNaturalKey(1, "0001-01")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "ALIMENTAR", p.Natureza)
	require.NotNil(t, p.ValorAcao)
	assert.InDelta(t, 1234.56, *p.ValorAcao, 0.0001)
	require.Len(t, p.Movimentacoes, 1)
	assert.Equal(t, "2021-05-10", p.Movimentacoes[0].Data)
}

func TestImportUpsertsByNaturalKey(t *testing.T) {
	store := newFakeStore()
	svc := newTestImportService(store, &fakePublisher{})

	rows := [][]interface{}{
		importHeaders,
		importRow("0001-01", "ALIMENTAR", "1.234,56"),
		importRow("0001-02", "COMUM", "2.000,00"),
	}

	_, err := svc.Import(buildWorkbook(t, sheetDef{name: "Precatorios", rows: rows}), "")
	require.NoError(t, err)

	result, err := svc.Import(buildWorkbook(t, sheetDef{name: "Precatorios", rows: rows}), "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 2, result.Updated)
	assert.Len(t, store.records, 2)
}

func TestImportRowFailureIsolation(t *testing.T) {
	store := newFakeStore()
	svc := newTestImportService(store, &fakePublisher{})

	workbook := buildWorkbook(t, sheetDef{name: "Precatorios", rows: [][]interface{}{
		importHeaders,
		importRow("0001-01", "ALIMENTAR", "1.234,56"),
		{"", "", "", "", "", "", "", ""}, // blank, skipped entirely
		importRow("0001-02", "INVALIDA", "2.000,00"),
		importRow("0001-03", "COMUM", "3.000,00"),
	}})

	result, err := svc.Import(workbook, "")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 1, result.Failed)

	require.Len(t, result.Errors, 1)
	// Error row numbers are spreadsheet rows, blank row included.
	assert.Equal(t, 4, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "natureza")
	// The error entry carries the row as uploaded, original headers and all.
	assert.Equal(t, "INVALIDA", result.Errors[0].Data["Natureza"])
	assert.Equal(t, "0001-02", result.Errors[0].Data["Número Processo"])

	assert.Len(t, store.records, 2)
}

func TestImportLastWriterWins(t *testing.T) {
	store := newFakeStore()
	svc := newTestImportService(store, &fakePublisher{})

	workbook := buildWorkbook(t, sheetDef{name: "Precatorios", rows: [][]interface{}{
		importHeaders,
		importRow("0001-01", "ALIMENTAR", "1.000,00"),
		importRow("0001-01", "COMUM", "9.999,99"),
	}})

	result, err := svc.Import(workbook, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)

	p, err := store.FindByNaturalKey(1, "0001-01")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "COMUM", p.Natureza)
	require.NotNil(t, p.ValorAcao)
	assert.InDelta(t, 9999.99, *p.ValorAcao, 0.0001)
}

func TestImportEmptySheet(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := newTestImportService(store, pub)

	workbook := buildWorkbook(t, sheetDef{name: "Precatorios", rows: [][]interface{}{
		importHeaders,
	}})

	result, err := svc.Import(workbook, "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total)
	assert.Empty(t, store.records)

	// Straight to completion, no progress events.
	assert.Empty(t, pub.byEvent(EventImportProgress))
	assert.Len(t, pub.byEvent(EventImportComplete), 1)
}

func TestImportProgressEvents(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := newTestImportService(store, pub)

	workbook := buildWorkbook(t, sheetDef{name: "Precatorios", rows: [][]interface{}{
		importHeaders,
		importRow("0001-01", "ALIMENTAR", "1,00"),
		importRow("0001-02", "COMUM", "2,00"),
		importRow("0001-03", "ALIMENTAR", "3,00"),
		importRow("0001-04", "COMUM", "4,00"),
	}})

	_, err := svc.Import(workbook, "client-1")
	require.NoError(t, err)

	progress := pub.byEvent(EventImportProgress)
	// Every row is reported twice: broadcast plus the targeted client.
	require.Len(t, progress, 8)

	lastPercentage := 0
	for _, e := range progress {
		if e.clientID != "" {
			assert.Equal(t, "client-1", e.clientID)
			continue
		}
		p, ok := e.data.(models.ImportProgress)
		require.True(t, ok)
		assert.GreaterOrEqual(t, p.Percentage, lastPercentage)
		lastPercentage = p.Percentage
	}
	assert.Equal(t, 100, lastPercentage)

	complete := pub.byEvent(EventImportComplete)
	require.Len(t, complete, 2)
}

// Date columns filled by spreadsheet software are real date cells, not text;
// they must come through as their serial values and decode correctly.
func TestImportNativeDateCells(t *testing.T) {
	store := newFakeStore()
	svc := newTestImportService(store, &fakePublisher{})

	workbook := buildWorkbook(t, sheetDef{name: "Precatorios", rows: [][]interface{}{
		{
			"Entidade ID", "Tribunal ID", "Número Processo", "Natureza",
			"Data Distribuição", "Data Atualização",
			"Movimentação1 Data", "Movimentação1 Valor", "Movimentação1 Tipo",
		},
		{
			"1", "1", "0001-01", "ALIMENTAR",
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC),
			time.Date(2021, 5, 10, 0, 0, 0, 0, time.UTC), "500,00", "DEPOSITO",
		},
	}})

	result, err := svc.Import(workbook, "")
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	assert.Equal(t, 1, result.Created)

	p, err := store.FindByNaturalKey(1, "0001-01")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotNil(t, p.DataDistribuicao)
	assert.Equal(t, "2024-03-05", *p.DataDistribuicao)
	require.NotNil(t, p.DataAtualizacao)
	assert.Equal(t, "2024-01-10T14:30:00", *p.DataAtualizacao)
	require.Len(t, p.Movimentacoes, 1)
	assert.Equal(t, "2021-05-10", p.Movimentacoes[0].Data)
	assert.Equal(t, "DEPOSITO", p.Movimentacoes[0].Tipo)
}

func TestImportSkipsInstructionsSheet(t *testing.T) {
	store := newFakeStore()
	svc := newTestImportService(store, &fakePublisher{})

	workbook := buildWorkbook(t,
		sheetDef{name: "Instruções", rows: [][]interface{}{
			{"Instruções de preenchimento"},
		}},
		sheetDef{name: "Precatorios", rows: [][]interface{}{
			importHeaders,
			importRow("0001-01", "ALIMENTAR", "1.234,56"),
		}},
	)

	result, err := svc.Import(workbook, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Created)
}

func TestImportStructuralError(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestImportService(newFakeStore(), pub)

	_, err := svc.Import(strings.NewReader("this is not a spreadsheet"), "client-1")
	require.Error(t, err)

	errs := pub.byEvent(EventImportError)
	require.Len(t, errs, 2)
	assert.Equal(t, "client-1", errs[1].clientID)
}

func TestImportFileMissing(t *testing.T) {
	svc := newTestImportService(newFakeStore(), &fakePublisher{})

	_, err := svc.ImportFile("/does/not/exist.xlsx", "")
	require.Error(t, err)
}
