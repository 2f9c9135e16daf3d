package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/venturelens/assessment-engine/internal/catalog"
	"github.com/venturelens/assessment-engine/internal/models"
)

func TestExportService_ExportWorksheet(t *testing.T) {
	exporter := NewExportService(testLogger())
	assembler := newTestAssembler(t, catalog.DefaultBank())

	ws, err := assembler.Assemble(models.Strategy{
		Difficulty:    models.DifficultyIntermediate,
		QuestionMix:   map[models.QuestionType]float64{models.Diagnostic: 0.5, models.Validation: 0.5},
		MaturityScore: 55,
		AdaptiveMode:  models.ModeBalanced,
	}, nil)
	require.NoError(t, err)

	data, err := exporter.ExportWorksheet(ws)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Worksheet", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Worksheet")
	require.NoError(t, err)
	// Header plus one row per question.
	require.Len(t, rows, len(ws.Questions)+1)
	assert.Equal(t, "Question", rows[0][1])
	assert.Equal(t, ws.Questions[0].Text, rows[1][1])
	assert.Equal(t, string(ws.Questions[0].Type), rows[1][2])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.NotEmpty(t, summary)
	assert.Equal(t, "Worksheet ID", summary[0][0])
	assert.Equal(t, ws.ID, summary[0][1])
}

func TestExportService_ExportCatalog(t *testing.T) {
	exporter := NewExportService(testLogger())
	bank := catalog.DefaultBank()

	data, err := exporter.ExportCatalog(bank)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Catalog")
	require.NoError(t, err)
	require.Len(t, rows, bank.Len()+1)
	assert.Equal(t, "Type", rows[0][0])
	assert.Equal(t, string(bank.Templates()[0].Type), rows[1][0])
}

func TestExportService_ExportEmptyWorksheet(t *testing.T) {
	exporter := NewExportService(testLogger())

	data, err := exporter.ExportWorksheet(&models.Worksheet{ID: "empty"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Worksheet")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
