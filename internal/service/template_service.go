package service

import (
	"fmt"
	"strings"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/models"

	"github.com/xuri/excelize/v2"
)

// TemplateFilename is the suggested download name for the import template.
const TemplateFilename = "modelo_importacao_precatorios.xlsx"

// MovimentacaoSlots is how many movimentação column triples the template
// pre-populates. The importer itself accepts any slot number.
const MovimentacaoSlots = 10

// TemplateService builds the ready-to-fill import spreadsheet: a data sheet
// with every expected header plus one example row, and an instructions sheet
// describing accepted formats. Pure construction, no dependency on the
// import loop.
type TemplateService struct{}

func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

func templateHeaders() []string {
	headers := []string{
		"Entidade ID", "Tribunal ID", "Número Processo", "Natureza",
		"Valor Ação", "Valor Atualizado", "Data Distribuição", "Data Atualização",
		"Vara", "Comarca", "Requerente", "Advogado", "Observação", "Ano Orçamento",
	}
	for n := 1; n <= MovimentacaoSlots; n++ {
		headers = append(headers,
			fmt.Sprintf("Movimentação%d Data", n),
			fmt.Sprintf("Movimentação%d Valor", n),
			fmt.Sprintf("Movimentação%d Tipo", n),
		)
	}
	return headers
}

// Build constructs the template workbook in memory.
func (s *TemplateService) Build() (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Precatorios"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	headers := templateHeaders()
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	example := []interface{}{
		1, 1, "0001234-56.2020.8.26.0053", "ALIMENTAR",
		"1.234,56", "2.000,00", "05/03/2020", "10/01/2024 14:30",
		"1ª Vara de Fazenda Pública", "São Paulo", "João da Silva",
		"Maria Souza OAB/SP 123456", "Exemplo de observação", 2025,
		"10/05/2021", "500,00", "DEPOSITO",
		"12/07/2022", "250,00", "LEVANTAMENTO",
	}
	for i, value := range example {
		cell := fmt.Sprintf("%s2", getColumnName(i))
		f.SetCellValue(sheetName, cell, value)
	}

	for i := range headers {
		col := getColumnName(i)
		width := 15.0
		if i == 2 || i == 10 || i == 11 || i == 12 {
			width = 28.0
		}
		f.SetColWidth(sheetName, col, col, width)
	}

	if err := s.addInstructionsSheet(f); err != nil {
		return nil, err
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f, nil
}

func (s *TemplateService) addInstructionsSheet(f *excelize.File) error {
	sheetName := "Instrucoes"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	instructions := []string{
		"Instruções de preenchimento:",
		"1. Não altere a linha de cabeçalho da planilha Precatorios.",
		"2. Entidade ID e Tribunal ID devem referir registros já cadastrados.",
		"3. Número Processo: identificador único do processo no tribunal.",
		fmt.Sprintf("4. Natureza: %s.", strings.Join(models.NaturezaValues, " ou ")),
		"5. Valores monetários no formato brasileiro (ex: 1.234,56).",
		"6. Datas no formato DD/MM/AAAA; Data Atualização aceita DD/MM/AAAA HH:MM.",
		fmt.Sprintf("7. Movimentações: até %d grupos MovimentaçãoN Data/Valor/Tipo.", MovimentacaoSlots),
		fmt.Sprintf("8. Tipo de movimentação: %s.", strings.Join(models.MovimentacaoTipos, ", ")),
		"9. Um grupo de movimentação só é importado com Data, Valor e Tipo preenchidos.",
		"",
		"A linha 2 da planilha Precatorios é um exemplo e pode ser removida.",
	}

	for i, instruction := range instructions {
		cell := fmt.Sprintf("A%d", i+1)
		f.SetCellValue(sheetName, cell, instruction)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetColWidth(sheetName, "A", "A", 80)

	return nil
}

// GenerateTemplate writes the template workbook to outputPath.
func (s *TemplateService) GenerateTemplate(outputPath string) error {
	f, err := s.Build()
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(outputPath)
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
