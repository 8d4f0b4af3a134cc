package dataset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/schema"
	"sales-insights-go/internal/types"
)

// Sheet names expected in the uploaded workbook. A missing sheet yields an
// empty sequence, not an error; only all three missing/empty is fatal.
const (
	OpportunitySheet = "ADRM"
	ActivitySheet    = "Actividades_2025"
	DetailSheet      = "Activities_2025_Details"
)

var (
	// ErrUnreadableFile means the bytes could not be decoded as a workbook.
	ErrUnreadableFile = errors.New("file might be corrupted or in an unexpected format")
	// ErrNoUsableData means none of the expected sheets produced records.
	ErrNoUsableData = fmt.Errorf("no data found: ensure at least one of %q, %q or %q sheets is present",
		OpportunitySheet, ActivitySheet, DetailSheet)
)

// Load reads a workbook from disk. See LoadReader.
func Load(path string) (types.Tables, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return types.Tables{}, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()
	return mapWorkbook(f)
}

// LoadReader decodes a workbook from r and maps the three known sheets into
// canonical record sequences, preserving row order. Input is never mutated;
// re-reading the same bytes yields identical sequences.
func LoadReader(r io.Reader) (types.Tables, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return types.Tables{}, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()
	return mapWorkbook(f)
}

func mapWorkbook(f *excelize.File) (types.Tables, error) {
	log := logger.New().WithField("component", "dataset.loader")

	var out types.Tables
	for _, row := range sheetRows(f, OpportunitySheet) {
		out.Opportunities = append(out.Opportunities, schema.MapOpportunityRow(row))
	}
	for _, row := range sheetRows(f, ActivitySheet) {
		out.Activities = append(out.Activities, schema.MapActivityRow(row))
	}
	for _, row := range sheetRows(f, DetailSheet) {
		out.Details = append(out.Details, schema.MapDetailRow(row))
	}

	if len(out.Opportunities) == 0 && len(out.Activities) == 0 && len(out.Details) == 0 {
		log.Warn("workbook contained none of the expected sheets")
		return types.Tables{}, ErrNoUsableData
	}
	log.WithFields(map[string]interface{}{
		"opportunities": len(out.Opportunities),
		"activities":    len(out.Activities),
		"details":       len(out.Details),
	}).Info("workbook mapped")
	return out, nil
}

// sheetRows converts one sheet into header-keyed raw rows. An absent sheet
// returns nil; rows with no non-empty cell are skipped, matching how export
// tools pad sheets with trailing blank rows.
func sheetRows(f *excelize.File, sheet string) []schema.RawRow {
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) <= 1 {
		return nil
	}
	header := rows[0]
	var out []schema.RawRow
	for _, cells := range rows[1:] {
		row := make(schema.RawRow, len(header))
		empty := true
		for i, h := range header {
			if i >= len(cells) {
				break
			}
			if strings.TrimSpace(cells[i]) != "" {
				empty = false
			}
			row[h] = cells[i]
		}
		if empty {
			continue
		}
		out = append(out, row)
	}
	return out
}
