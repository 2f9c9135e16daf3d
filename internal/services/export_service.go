package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/venturelens/assessment-engine/internal/catalog"
	"github.com/venturelens/assessment-engine/internal/models"
)

// ExportService renders worksheets and the template catalog to xlsx for
// offline review.
type ExportService struct {
	logger *slog.Logger
}

func NewExportService(logger *slog.Logger) *ExportService {
	return &ExportService{logger: logger}
}

var worksheetHeaders = []string{
	"#", "Question", "Type", "Difficulty", "Input", "Required",
	"Criteria", "Weight", "Help",
}

// ExportWorksheet writes the worksheet to a two-sheet workbook:
// the question list and a summary sheet.
func (s *ExportService) ExportWorksheet(ws *models.Worksheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Worksheet"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range worksheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, q := range ws.Questions {
		row := []interface{}{
			i + 1,
			q.Text,
			string(q.Type),
			string(q.Difficulty),
			string(q.InputType),
			q.Required,
			strings.Join(q.ScoringCriteria, ", "),
			q.Weight,
			q.HelpText,
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write question row: %w", err)
			}
		}
	}

	if err := s.writeSummarySheet(f, ws); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("worksheet exported",
		"worksheet_id", ws.ID,
		"questions", len(ws.Questions))

	return buf.Bytes(), nil
}

func (s *ExportService) writeSummarySheet(f *excelize.File, ws *models.Worksheet) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Worksheet ID", ws.ID},
		{"Difficulty", string(ws.Strategy.Difficulty)},
		{"Adaptive mode", string(ws.Strategy.AdaptiveMode)},
		{"Maturity score", ws.Strategy.MaturityScore},
		{"Questions", len(ws.Questions)},
		{"Estimated minutes", ws.Metadata.EstimatedMinutes},
		{"Total weight", ws.Metadata.TotalWeight},
		{"Focus areas", strings.Join(ws.Strategy.FocusAreas, ", ")},
	}
	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write summary row: %w", err)
			}
		}
	}
	return nil
}

var catalogHeaders = []string{
	"Type", "Difficulty", "Text", "Criteria", "Min length", "Focus area",
}

// ExportCatalog writes the full template bank to a workbook.
func (s *ExportService) ExportCatalog(bank *catalog.QuestionBank) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Catalog"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range catalogHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, tmpl := range bank.Templates() {
		row := []interface{}{
			string(tmpl.Type),
			string(tmpl.Difficulty),
			tmpl.Text,
			strings.Join(tmpl.ScoringCriteria, ", "),
			tmpl.Validation.MinLength,
			tmpl.FocusArea,
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write template row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
