package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Workbook row layout (0-indexed columns). Column 7 is unused in the
// submitted templates.
const (
	colArchdeaconry = 0
	colParish       = 1
	colCongregation = 2
	colSundaySchool = 3
	colYouth        = 4
	colAdults       = 5
	colDiffAbled    = 6
	colCollection   = 8
	colBanked       = 9
	colUnbanked     = 10
	colRemarks      = 11
)

// ParsedRow is a validated record candidate extracted from one sheet row.
type ParsedRow struct {
	ArchdeaconryName string
	ParishName       string
	CongregationName string
	SundaySchool     int
	Youth            int
	Adults           int
	DiffAbled        int
	TotalCollection  decimal.Decimal
	Banked           decimal.Decimal
	Unbanked         decimal.Decimal
	Remarks          string
}

type RowOutcome int

const (
	// RowParsed means the row produced a valid record candidate.
	RowParsed RowOutcome = iota
	// RowSkipped means a hierarchy name was blank; not an error.
	RowSkipped
	// RowFailed means parsing hit an unexpected condition; the error is
	// reported and the rest of the sheet continues.
	RowFailed
)

// RowResult is the explicit per-row outcome: a record candidate, a silent
// skip, or an error tagged with its sheet and row position.
type RowResult struct {
	Outcome RowOutcome
	Row     ParsedRow
	Err     string
}

// ParseRow extracts one sheet row into a record candidate. Rows with any
// blank hierarchy name are skipped. Numeric cells default to zero when blank
// or unreadable; a panic while parsing is converted into a row-level error
// so one bad row never aborts its sheet.
func ParseRow(cells []string, sheetName string, rowNumber int) (result RowResult) {
	defer func() {
		if r := recover(); r != nil {
			result = RowResult{
				Outcome: RowFailed,
				Err:     fmt.Sprintf("sheet '%s' row %d: %v", sheetName, rowNumber, r),
			}
		}
	}()

	cell := func(index int) string {
		if index < len(cells) {
			return cells[index]
		}
		return ""
	}

	archdeaconryName := strings.TrimSpace(cell(colArchdeaconry))
	parishName := strings.TrimSpace(cell(colParish))
	congregationName := strings.TrimSpace(cell(colCongregation))
	if archdeaconryName == "" || parishName == "" || congregationName == "" {
		return RowResult{Outcome: RowSkipped}
	}

	row := ParsedRow{
		ArchdeaconryName: archdeaconryName,
		ParishName:       parishName,
		CongregationName: congregationName,
		SundaySchool:     parseCount(cell(colSundaySchool)),
		Youth:            parseCount(cell(colYouth)),
		Adults:           parseCount(cell(colAdults)),
		DiffAbled:        parseCount(cell(colDiffAbled)),
		TotalCollection:  parseAmount(cell(colCollection)),
		Banked:           parseAmount(cell(colBanked)),
		Unbanked:         parseAmount(cell(colUnbanked)),
		Remarks:          strings.TrimSpace(cell(colRemarks)),
	}
	return RowResult{Outcome: RowParsed, Row: row}
}

// parseCount reads an attendance count cell. Blank, unreadable, or negative
// values fall back to zero rather than failing the row.
func parseCount(raw string) int {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0
	}
	return int(value)
}

// parseAmount reads a currency cell. Blank, unreadable, or negative values
// fall back to zero.
func parseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}
