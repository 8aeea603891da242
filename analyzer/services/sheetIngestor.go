package services

import (
	"fmt"
	"time"

	"diocese-attendance-backend/db/models"
	hierarchy_services "diocese-attendance-backend/hierarchy/services"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// sheetDateLayout matches sheet names like "06-01-25" (day-month-2digit-year).
const sheetDateLayout = "02-01-06"

// headerRows is the number of leading rows excluded from ingestion.
const headerRows = 1

// Define minimal interfaces for what sheet ingestion needs
type HierarchyResolver interface {
	Resolve(archdeaconryName, parishName, congregationName string) (hierarchy_services.ResolvedHierarchy, error)
}

type RecordUpserter interface {
	UpsertRecord(record *models.AttendanceRecord) error
}

// IngestWorkbook walks every sheet of an opened workbook, parses each sheet
// name into its Sunday date, and upserts one attendance record per valid row.
// Errors are accumulated per sheet and per row; a bad sheet or row never
// aborts its siblings. The returned date is the one from whichever sheet
// parsed successfully last in workbook order, falling back to the current
// date when no sheet name parsed at all.
func IngestWorkbook(f *excelize.File, workbookID uuid.UUID, resolver HierarchyResolver, records RecordUpserter) ([]string, time.Time) {
	errorList := []string{}
	var sheetDate time.Time

	for _, sheetName := range f.GetSheetList() {
		parsedDate, err := time.Parse(sheetDateLayout, sheetName)
		if err != nil {
			errorList = append(errorList, fmt.Sprintf("Invalid sheet name format: '%s'", sheetName))
			continue
		}
		sheetDate = parsedDate

		rows, err := f.GetRows(sheetName)
		if err != nil {
			errorList = append(errorList, fmt.Sprintf("Failed to read rows from sheet '%s': %v", sheetName, err))
			continue
		}

		for i, cells := range rows {
			if i < headerRows {
				continue
			}
			rowNumber := i + 1 // 1-based, matching what the submitter sees in Excel

			result := ParseRow(cells, sheetName, rowNumber)
			switch result.Outcome {
			case RowSkipped:
				continue
			case RowFailed:
				errorList = append(errorList, result.Err)
				continue
			}

			if err := upsertParsedRow(result.Row, workbookID, parsedDate, resolver, records); err != nil {
				errorList = append(errorList, fmt.Sprintf("sheet '%s' row %d: %v", sheetName, rowNumber, err))
			}
		}
	}

	if sheetDate.IsZero() {
		sheetDate = time.Now()
	}
	return errorList, sheetDate
}

func upsertParsedRow(row ParsedRow, workbookID uuid.UUID, sundayDate time.Time, resolver HierarchyResolver, records RecordUpserter) error {
	resolved, err := resolver.Resolve(row.ArchdeaconryName, row.ParishName, row.CongregationName)
	if err != nil {
		return err
	}

	return records.UpsertRecord(&models.AttendanceRecord{
		ID:              uuid.New(),
		WorkbookID:      workbookID,
		ArchdeaconryID:  resolved.ArchdeaconryID,
		ParishID:        resolved.ParishID,
		CongregationID:  resolved.CongregationID,
		SundayDate:      sundayDate,
		SundaySchool:    row.SundaySchool,
		Adults:          row.Adults,
		DiffAbled:       row.DiffAbled,
		Youth:           row.Youth,
		TotalCollection: row.TotalCollection,
		Banked:          row.Banked,
		Unbanked:        row.Unbanked,
		Remarks:         row.Remarks,
	})
}
