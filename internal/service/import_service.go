package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"
	"github.com/Ativos-Tecnologia/radar-sub000/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Websocket event names for the import progress channel.
const (
	EventImportProgress = "import-progress"
	EventImportComplete = "import-complete"
	EventImportError    = "import-error"
)

// PrecatorioStore is the persistence contract the importer drives.
// FindByNaturalKey returns (nil, nil) when no precatorio matches.
// Update replaces the movimentação list wholesale.
type PrecatorioStore interface {
	FindByNaturalKey(tribunalID int, numeroProcesso string) (*models.Precatorio, error)
	Create(p *models.Precatorio) error
	Update(p *models.Precatorio) error
}

// Publisher delivers progress events to connected listeners. Emit broadcasts
// to every listener; EmitTo targets the one connection registered under
// clientID.
type Publisher interface {
	Emit(event string, data interface{})
	EmitTo(clientID, event string, data interface{})
}

// ImportService drives the row-by-row import loop: parse workbook, normalize
// each row, build the record, upsert by natural key, report progress. Rows
// are processed strictly in spreadsheet order; two rows targeting the same
// natural key within one sheet resolve last-writer-wins, which is why the
// loop is sequential on purpose.
type ImportService struct {
	precatorios PrecatorioStore
	builder     *RecordBuilder
	hub         Publisher
	rdb         *redis.Client
	log         *logrus.Logger
}

func NewImportService(precatorios PrecatorioStore, entidades EntidadeChecker, tribunais TribunalChecker, hub Publisher, rdb *redis.Client) *ImportService {
	return &ImportService{
		precatorios: precatorios,
		builder:     NewRecordBuilder(entidades, tribunais),
		hub:         hub,
		rdb:         rdb,
		log:         utils.GetLogger(),
	}
}

// ImportFile runs Import against a file on disk.
func (s *ImportService) ImportFile(path, clientID string) (*models.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		structural := fmt.Errorf("open upload: %w", err)
		s.publishError(clientID, structural)
		return nil, structural
	}
	defer f.Close()

	return s.Import(f, clientID)
}

// Import ingests one spreadsheet. Row-level failures are recorded in the
// result and never abort the loop; only structural failures (unreadable file,
// empty workbook) return an error, after an "import-error" event is pushed.
func (s *ImportService) Import(r io.Reader, clientID string) (*models.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		structural := fmt.Errorf("failed to open spreadsheet: %w", err)
		s.publishError(clientID, structural)
		return nil, structural
	}
	defer f.Close()

	sheetName, err := pickDataSheet(f)
	if err != nil {
		s.publishError(clientID, err)
		return nil, err
	}

	// Raw values, not formatted ones: native date cells must surface as
	// their serial numbers for the date parser to decode them.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		structural := fmt.Errorf("failed to read rows from sheet %s: %w", sheetName, err)
		s.publishError(clientID, structural)
		return nil, structural
	}

	result := &models.ImportResult{Errors: []models.ImportRowError{}}
	if len(rows) == 0 {
		// No header, no data: nothing to do but say so.
		s.publishComplete(clientID, result)
		return result, nil
	}

	headers := rows[0]
	dataRows := collectDataRows(rows)
	result.Total = len(dataRows)

	for i, dr := range dataRows {
		row := normalizeRow(headers, dr.cells)
		current := i + 1

		created, err := s.processRow(row, dr.number)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, models.ImportRowError{
				Row:   dr.number,
				Error: err.Error(),
				Data:  rawRow(headers, dr.cells),
			})
			s.log.WithFields(logrus.Fields{
				"row":   dr.number,
				"error": err.Error(),
			}).Warn("import row failed")
		} else {
			result.Success++
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		s.publishProgress(clientID, models.ImportProgress{
			Total:      result.Total,
			Current:    current,
			Percentage: int(math.Round(float64(current) / float64(result.Total) * 100)),
			Status:     fmt.Sprintf("Processando linha %d de %d", current, result.Total),
			CurrentRow: dr.number,
			Preview:    previewOf(row),
		})
	}

	s.publishComplete(clientID, result)
	s.log.WithFields(logrus.Fields{
		"total":   result.Total,
		"success": result.Success,
		"failed":  result.Failed,
		"created": result.Created,
		"updated": result.Updated,
	}).Info("import completed")

	return result, nil
}

// processRow owns the per-row failure boundary: validation and persistence
// failures are reported identically to the caller. The bool reports whether
// the row resulted in a create (as opposed to an update).
func (s *ImportService) processRow(row models.ImportRow, rowNum int) (bool, error) {
	p, err := s.builder.Build(row, rowNum)
	if err != nil {
		return false, err
	}

	existing, err := s.precatorios.FindByNaturalKey(p.TribunalID, p.NumeroProcesso)
	if err != nil {
		return false, fmt.Errorf("Row %d: lookup precatorio: %w", rowNum, err)
	}

	if existing != nil {
		p.ID = existing.ID
		if err := s.precatorios.Update(p); err != nil {
			return false, fmt.Errorf("Row %d: update precatorio: %w", rowNum, err)
		}
		return false, nil
	}

	if err := s.precatorios.Create(p); err != nil {
		return false, fmt.Errorf("Row %d: create precatorio: %w", rowNum, err)
	}
	return true, nil
}

func (s *ImportService) publishProgress(clientID string, progress models.ImportProgress) {
	if s.hub != nil {
		s.hub.Emit(EventImportProgress, progress)
		if clientID != "" {
			s.hub.EmitTo(clientID, EventImportProgress, progress)
		}
	}
	if s.rdb != nil && clientID != "" {
		key := fmt.Sprintf("import:progress:%s", clientID)
		s.rdb.Set(context.Background(), key, progress.Percentage, time.Hour)
	}
}

func (s *ImportService) publishComplete(clientID string, result *models.ImportResult) {
	if s.hub == nil {
		return
	}
	s.hub.Emit(EventImportComplete, result)
	if clientID != "" {
		s.hub.EmitTo(clientID, EventImportComplete, result)
	}
}

func (s *ImportService) publishError(clientID string, err error) {
	if s.hub == nil {
		return
	}
	payload := map[string]string{"error": err.Error()}
	s.hub.Emit(EventImportError, payload)
	if clientID != "" {
		s.hub.EmitTo(clientID, EventImportError, payload)
	}
}

// pickDataSheet selects the first sheet whose name is not the reserved
// instructions label, defaulting to the first sheet when every name matches.
func pickDataSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("no sheets found in spreadsheet")
	}
	for _, name := range sheets {
		normalized := normalizeHeader(name)
		if normalized != "instrucoes" && normalized != "instructions" {
			return name, nil
		}
	}
	return sheets[0], nil
}

type dataRow struct {
	number int // 1-based spreadsheet row number, header included
	cells  []string
}

// collectDataRows keeps the data rows that have at least one non-blank cell,
// preserving their original spreadsheet row numbers.
func collectDataRows(rows [][]string) []dataRow {
	var out []dataRow
	for i := 1; i < len(rows); i++ {
		empty := true
		for _, cell := range rows[i] {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, dataRow{number: i + 1, cells: rows[i]})
		}
	}
	return out
}

// rawRow preserves a failed row as uploaded, keyed by the original header
// text, so the error report shows exactly what the operator typed.
func rawRow(headers, cells []string) models.ImportRow {
	out := make(models.ImportRow, len(headers))
	for i, header := range headers {
		if strings.TrimSpace(header) == "" {
			continue
		}
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		out[header] = cell
	}
	return out
}

func previewOf(row models.ImportRow) *models.ImportPreview {
	numero, _ := parseStringCell(row["numero_processo"])
	requerente, _ := parseStringCell(row["requerente"])
	if numero == "" && requerente == "" {
		return nil
	}
	return &models.ImportPreview{
		NumeroProcesso: numero,
		Requerente:     requerente,
	}
}
