package services

import (
	"errors"
	"strings"
	"testing"

	"diocese-attendance-backend/db/models"
	hierarchy_services "diocese-attendance-backend/hierarchy/services"

	"github.com/google/uuid"
)

type fakeWorkbookStore struct {
	byName map[string]*models.UploadedWorkbook
}

func newFakeWorkbookStore() *fakeWorkbookStore {
	return &fakeWorkbookStore{byName: make(map[string]*models.UploadedWorkbook)}
}

func (s *fakeWorkbookStore) GetOrCreateByFileName(fileName, filePath string) (*models.UploadedWorkbook, bool, error) {
	if existing, ok := s.byName[fileName]; ok {
		return existing, false, nil
	}
	workbook := &models.UploadedWorkbook{ID: uuid.New(), FileName: fileName, FilePath: filePath}
	s.byName[fileName] = workbook
	return workbook, true, nil
}

func (s *fakeWorkbookStore) Update(workbook *models.UploadedWorkbook) error {
	s.byName[workbook.FileName] = workbook
	return nil
}

// fakeTransactor hands the same fake stores to every "transaction".
type fakeTransactor struct {
	workbooks *fakeWorkbookStore
	hierarchy *fakeHierarchyStore
	records   *fakeRecordStore
}

func newFakeTransactor() *fakeTransactor {
	return &fakeTransactor{
		workbooks: newFakeWorkbookStore(),
		hierarchy: newFakeHierarchyStore(),
		records:   newFakeRecordStore(),
	}
}

func (t *fakeTransactor) InTransaction(fn func(deps IngestionDeps) error) error {
	return fn(IngestionDeps{
		Workbooks: t.workbooks,
		Resolver:  hierarchy_services.NewResolver(t.hierarchy),
		Records:   t.records,
	})
}

func noopSaver(fileName string, data []byte) (string, error) {
	return "uploads/workbooks/" + fileName, nil
}

func validWorkbookBytes(t *testing.T) []byte {
	t.Helper()
	return workbookBytes(t, []sheetData{
		{name: "06-01-25", rows: [][]interface{}{
			header(),
			{"North", "St. Mark", "Youth Chapel", 10, 5, 50, 0, "", 100, 80, 20, ""},
		}},
	})
}

func TestProcessUploads_EmptyListRejected(t *testing.T) {
	transactor := newFakeTransactor()
	orchestrator := NewUploadOrchestrator(transactor, noopSaver)

	_, err := orchestrator.ProcessUploads(nil)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestProcessUploads_BadExtensionRejectedBeforeAnyWrite(t *testing.T) {
	transactor := newFakeTransactor()
	orchestrator := NewUploadOrchestrator(transactor, noopSaver)

	files := []UploadedFile{
		{Name: "january.xlsx", Data: validWorkbookBytes(t)},
		{Name: "notes.csv", Data: []byte("a,b,c")},
	}

	_, err := orchestrator.ProcessUploads(files)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(validationErr.Message, "notes.csv") {
		t.Errorf("message = %q, want the offending file named", validationErr.Message)
	}
	// The valid sibling must not have been touched either.
	if len(transactor.workbooks.byName) != 0 || len(transactor.records.all()) != 0 {
		t.Errorf("writes happened before validation finished")
	}
}

func TestProcessUploads_CleanFileProcessed(t *testing.T) {
	transactor := newFakeTransactor()
	orchestrator := NewUploadOrchestrator(transactor, noopSaver)

	summaries, err := orchestrator.ProcessUploads([]UploadedFile{
		{Name: "january.xlsx", Data: validWorkbookBytes(t)},
	})
	if err != nil {
		t.Fatalf("ProcessUploads() error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}

	summary := summaries[0]
	if summary.File != "january.xlsx" || !summary.NewUpload || !summary.Processed {
		t.Errorf("summary = %+v, want new upload, processed", summary)
	}
	if len(summary.Errors) != 0 {
		t.Errorf("errors = %v, want none", summary.Errors)
	}

	upload := transactor.workbooks.byName["january.xlsx"]
	if upload == nil {
		t.Fatal("upload row missing")
	}
	if !upload.Processed {
		t.Errorf("upload.Processed = false, want true")
	}
	if upload.SheetDate.IsZero() {
		t.Errorf("upload.SheetDate not persisted")
	}
	if len(transactor.records.all()) != 1 {
		t.Errorf("records = %d, want 1", len(transactor.records.all()))
	}
}

func TestProcessUploads_ReuploadReplacesInsteadOfDuplicating(t *testing.T) {
	transactor := newFakeTransactor()
	orchestrator := NewUploadOrchestrator(transactor, noopSaver)

	first, err := orchestrator.ProcessUploads([]UploadedFile{{Name: "january.xlsx", Data: validWorkbookBytes(t)}})
	if err != nil {
		t.Fatalf("first upload error: %v", err)
	}
	if !first[0].NewUpload {
		t.Fatalf("first upload NewUpload = false, want true")
	}
	firstID := transactor.workbooks.byName["january.xlsx"].ID

	second, err := orchestrator.ProcessUploads([]UploadedFile{{Name: "january.xlsx", Data: validWorkbookBytes(t)}})
	if err != nil {
		t.Fatalf("second upload error: %v", err)
	}
	if second[0].NewUpload {
		t.Errorf("second upload NewUpload = true, want false")
	}
	if len(transactor.workbooks.byName) != 1 {
		t.Errorf("re-upload created a second workbook row")
	}
	if transactor.workbooks.byName["january.xlsx"].ID != firstID {
		t.Errorf("re-upload replaced the row instead of updating it")
	}
	// Same (congregation, date) pairs were overwritten, not duplicated.
	if len(transactor.records.all()) != 1 {
		t.Errorf("records = %d, want 1", len(transactor.records.all()))
	}
}

func TestProcessUploads_CorruptFileReportedAndSiblingsContinue(t *testing.T) {
	transactor := newFakeTransactor()
	orchestrator := NewUploadOrchestrator(transactor, noopSaver)

	summaries, err := orchestrator.ProcessUploads([]UploadedFile{
		{Name: "broken.xlsx", Data: []byte("this is not a zip archive")},
		{Name: "january.xlsx", Data: validWorkbookBytes(t)},
	})
	if err != nil {
		t.Fatalf("ProcessUploads() error: %v", err)
	}

	broken := summaries[0]
	if broken.Processed {
		t.Errorf("corrupt file marked processed")
	}
	if len(broken.Errors) != 1 || !strings.Contains(broken.Errors[0], "unreadable workbook") {
		t.Errorf("broken.Errors = %v", broken.Errors)
	}

	healthy := summaries[1]
	if !healthy.Processed || len(healthy.Errors) != 0 {
		t.Errorf("sibling file did not ingest cleanly: %+v", healthy)
	}
}

func TestProcessUploads_SheetErrorsLeaveFileUnprocessed(t *testing.T) {
	transactor := newFakeTransactor()
	orchestrator := NewUploadOrchestrator(transactor, noopSaver)

	data := workbookBytes(t, []sheetData{
		{name: "not-a-date", rows: [][]interface{}{
			header(),
			{"North", "St. Mark", "Youth Chapel", 10},
		}},
		{name: "06-01-25", rows: [][]interface{}{
			header(),
			{"North", "St. Mark", "Youth Chapel", 10},
		}},
	})

	summaries, err := orchestrator.ProcessUploads([]UploadedFile{{Name: "mixed.xlsx", Data: data}})
	if err != nil {
		t.Fatalf("ProcessUploads() error: %v", err)
	}

	summary := summaries[0]
	if summary.Processed {
		t.Errorf("file with sheet errors marked processed")
	}
	if len(summary.Errors) != 1 {
		t.Errorf("errors = %v, want the single sheet-level error", summary.Errors)
	}

	upload := transactor.workbooks.byName["mixed.xlsx"]
	if upload.Processed {
		t.Errorf("upload.Processed = true, want false")
	}
	if !strings.Contains(upload.ErrorMessage, "Invalid sheet name format") {
		t.Errorf("upload.ErrorMessage = %q, want the sheet error persisted", upload.ErrorMessage)
	}
	// The good sheet's rows still landed.
	if len(transactor.records.all()) != 1 {
		t.Errorf("records = %d, want 1 from the valid sheet", len(transactor.records.all()))
	}
}

func TestProcessUploads_SaveFailureIsFileLevelError(t *testing.T) {
	transactor := newFakeTransactor()
	orchestrator := NewUploadOrchestrator(transactor, func(string, []byte) (string, error) {
		return "", errors.New("disk full")
	})

	summaries, err := orchestrator.ProcessUploads([]UploadedFile{{Name: "january.xlsx", Data: validWorkbookBytes(t)}})
	if err != nil {
		t.Fatalf("ProcessUploads() error: %v", err)
	}
	summary := summaries[0]
	if summary.Processed {
		t.Errorf("failed file marked processed")
	}
	if len(summary.Errors) != 1 || !strings.Contains(summary.Errors[0], "disk full") {
		t.Errorf("errors = %v", summary.Errors)
	}
}
