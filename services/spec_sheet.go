package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"datasheet_studio_go/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	SpecSheetName        = "Specs"
	SpecSheetFileName    = "Harvester_Specs.xlsx"
	SpecSheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ErrEmptySpecSheet = errors.New("spec sheet has no sections")

var specSheetHeader = []string{"Section ID", "Section", "Parameter", "Value"}

// ExportSpecsWorkbook writes the spec table as one row per parameter.
// A section without rows still gets a line so it survives a round trip.
func ExportSpecsWorkbook(sections []models.SpecSection) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SpecSheetName)

	for i, h := range specSheetHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SpecSheetName, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(SpecSheetName, "A1", "D1", headerStyle)
	f.SetColWidth(SpecSheetName, "A", "A", 16)
	f.SetColWidth(SpecSheetName, "B", "C", 32)
	f.SetColWidth(SpecSheetName, "D", "D", 24)

	line := 2
	writeLine := func(values ...string) error {
		cell, _ := excelize.CoordinatesToCellName(1, line)
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		line++
		return f.SetSheetRow(SpecSheetName, cell, &row)
	}

	for _, section := range sections {
		if len(section.Rows) == 0 {
			if err := writeLine(section.ID, section.Title, "", ""); err != nil {
				return nil, fmt.Errorf("failed to write section %s: %w", section.ID, err)
			}
			continue
		}
		for _, row := range section.Rows {
			if err := writeLine(section.ID, section.Title, row.Label, row.Value); err != nil {
				return nil, fmt.Errorf("failed to write section %s: %w", section.ID, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// ImportSpecsWorkbook rebuilds sections from a workbook in the export layout.
// Sections keep first-seen order; lines without an ID are grouped by title under a new id.
func ImportSpecsWorkbook(file io.Reader) ([]models.SpecSection, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	sheet := SpecSheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySpecSheet
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", sheet, err)
	}

	var sections []models.SpecSection
	index := make(map[string]int)

	for i, row := range rows {
		if i == 0 {
			continue
		} // Header
		id := cellAt(row, 0)
		title := cellAt(row, 1)
		label := cellAt(row, 2)
		value := cellAt(row, 3)
		if id == "" && title == "" && label == "" && value == "" {
			continue
		}

		key := id
		if key == "" {
			key = "title:" + title
		}
		pos, ok := index[key]
		if !ok {
			if id == "" {
				id = "custom-" + uuid.New().String()
			}
			sections = append(sections, models.SpecSection{ID: id, Title: title, Rows: []models.SpecRow{}})
			pos = len(sections) - 1
			index[key] = pos
		}

		if label == "" && value == "" {
			continue
		}
		sections[pos].Rows = append(sections[pos].Rows, models.SpecRow{Label: label, Value: value})
	}

	if len(sections) == 0 {
		return nil, ErrEmptySpecSheet
	}
	return sections, nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
