package services

import (
	"os"
	"testing"
	"time"

	"diocese-attendance-backend/config"
	"diocese-attendance-backend/db/models"
	hierarchy_services "diocese-attendance-backend/hierarchy/services"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	os.Exit(m.Run())
}

// fakeHierarchyStore backs a real Resolver in ingestion tests.
type fakeHierarchyStore struct {
	archdeaconries map[string]*models.Archdeaconry
	parishes       map[string]*models.Parish
	congregations  map[string]*models.Congregation
}

func newFakeHierarchyStore() *fakeHierarchyStore {
	return &fakeHierarchyStore{
		archdeaconries: make(map[string]*models.Archdeaconry),
		parishes:       make(map[string]*models.Parish),
		congregations:  make(map[string]*models.Congregation),
	}
}

func (s *fakeHierarchyStore) GetOrCreateArchdeaconry(name string) (*models.Archdeaconry, error) {
	if arch, ok := s.archdeaconries[name]; ok {
		return arch, nil
	}
	arch := &models.Archdeaconry{ID: uuid.New(), Name: name}
	s.archdeaconries[name] = arch
	return arch, nil
}

func (s *fakeHierarchyStore) GetOrCreateParish(archdeaconryID uuid.UUID, name string) (*models.Parish, error) {
	key := archdeaconryID.String() + "/" + name
	if parish, ok := s.parishes[key]; ok {
		return parish, nil
	}
	parish := &models.Parish{ID: uuid.New(), ArchdeaconryID: archdeaconryID, Name: name}
	s.parishes[key] = parish
	return parish, nil
}

func (s *fakeHierarchyStore) GetOrCreateCongregation(parishID uuid.UUID, name string) (*models.Congregation, error) {
	key := parishID.String() + "/" + name
	if congregation, ok := s.congregations[key]; ok {
		return congregation, nil
	}
	congregation := &models.Congregation{ID: uuid.New(), ParishID: parishID, Name: name, Active: true}
	s.congregations[key] = congregation
	return congregation, nil
}

func newFakeResolver() (*hierarchy_services.Resolver, *fakeHierarchyStore) {
	store := newFakeHierarchyStore()
	return hierarchy_services.NewResolver(store), store
}

// fakeRecordStore upserts records keyed by (congregation, sunday date),
// mirroring the unique constraint of the real table.
type fakeRecordStore struct {
	records map[string]*models.AttendanceRecord
	order   []string
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string]*models.AttendanceRecord)}
}

func recordKey(congregationID uuid.UUID, sundayDate time.Time) string {
	return congregationID.String() + "|" + sundayDate.Format("2006-01-02")
}

func (s *fakeRecordStore) UpsertRecord(record *models.AttendanceRecord) error {
	key := recordKey(record.CongregationID, record.SundayDate)
	if existing, ok := s.records[key]; ok {
		record.ID = existing.ID
		s.records[key] = record
		return nil
	}
	s.records[key] = record
	s.order = append(s.order, key)
	return nil
}

func (s *fakeRecordStore) all() []*models.AttendanceRecord {
	out := make([]*models.AttendanceRecord, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.records[key])
	}
	return out
}

// sheetData is one sheet of a workbook built for a test, in workbook order.
type sheetData struct {
	name string
	rows [][]interface{}
}

// buildWorkbook assembles a real xlsx workbook in memory. The first row of
// each sheet is expected to be the header.
func buildWorkbook(t *testing.T, sheets []sheetData) *excelize.File {
	t.Helper()
	f := excelize.NewFile()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				t.Fatalf("SetSheetName: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				t.Fatalf("NewSheet: %v", err)
			}
		}
		for rowIdx, row := range sheet.rows {
			for colIdx, value := range row {
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					t.Fatalf("CoordinatesToCellName: %v", err)
				}
				if err := f.SetCellValue(sheet.name, cell, value); err != nil {
					t.Fatalf("SetCellValue: %v", err)
				}
			}
		}
	}
	return f
}

// header returns the fixed template header row.
func header() []interface{} {
	return []interface{}{
		"Archdeaconry", "Parish", "Congregation", "Sunday School", "Youth",
		"Adults", "Diff Abled", "", "Total Collection", "Banked", "Unbanked", "Remarks",
	}
}

func workbookBytes(t *testing.T, sheets []sheetData) []byte {
	t.Helper()
	f := buildWorkbook(t, sheets)
	defer f.Close()
	buffer, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buffer.Bytes()
}
