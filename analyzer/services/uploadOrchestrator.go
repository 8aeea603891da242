package services

import (
	"bytes"
	"fmt"
	"strings"

	"diocese-attendance-backend/config"
	"diocese-attendance-backend/db/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// UploadedFile is one file received by the ingestion endpoint.
type UploadedFile struct {
	Name string
	Data []byte
}

// FileSummary is the per-file result reported back to the uploader.
type FileSummary struct {
	File      string   `json:"file"`
	NewUpload bool     `json:"new_upload"`
	Processed bool     `json:"processed"`
	Errors    []string `json:"errors"`
}

// ValidationError rejects the whole upload request before any file is touched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Stores the orchestrator needs, bound to one transaction per file.
type WorkbookStore interface {
	GetOrCreateByFileName(fileName, filePath string) (*models.UploadedWorkbook, bool, error)
	Update(workbook *models.UploadedWorkbook) error
}

type IngestionDeps struct {
	Workbooks WorkbookStore
	Resolver  HierarchyResolver
	Records   RecordUpserter
}

// Transactor scopes all writes for one file to a single transaction so a
// mid-sheet failure never leaves records inconsistent with the reported
// error list.
type Transactor interface {
	InTransaction(fn func(deps IngestionDeps) error) error
}

// FileSaver persists the raw workbook bytes and returns the stored path.
type FileSaver func(fileName string, data []byte) (string, error)

type UploadOrchestrator struct {
	transactor Transactor
	saveFile   FileSaver
}

func NewUploadOrchestrator(transactor Transactor, saveFile FileSaver) *UploadOrchestrator {
	return &UploadOrchestrator{
		transactor: transactor,
		saveFile:   saveFile,
	}
}

// ProcessUploads ingests each uploaded workbook independently. Validation
// failures (empty list, non-.xlsx name) reject the whole batch up front;
// after that each file succeeds or partially succeeds on its own, with its
// errors collected into its summary rather than failing the request.
func (o *UploadOrchestrator) ProcessUploads(files []UploadedFile) ([]FileSummary, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Message: "no files provided"}
	}
	for _, file := range files {
		if !strings.HasSuffix(file.Name, ".xlsx") {
			return nil, &ValidationError{Message: fmt.Sprintf("file '%s' must have a .xlsx extension", file.Name)}
		}
	}

	summaries := make([]FileSummary, 0, len(files))
	for _, file := range files {
		summaries = append(summaries, o.processFile(file))
	}
	return summaries, nil
}

func (o *UploadOrchestrator) processFile(file UploadedFile) FileSummary {
	summary := FileSummary{File: file.Name, Errors: []string{}}

	err := o.transactor.InTransaction(func(deps IngestionDeps) error {
		filePath, err := o.saveFile(file.Name, file.Data)
		if err != nil {
			return fmt.Errorf("failed to store file: %w", err)
		}

		upload, created, err := deps.Workbooks.GetOrCreateByFileName(file.Name, filePath)
		if err != nil {
			return err
		}
		summary.NewUpload = created

		if !created {
			// Same file name re-uploaded: replace the stored file and mark
			// for reprocessing. Records from the previous upload are kept;
			// pairs still present in the new file are overwritten below.
			upload.FilePath = filePath
			upload.Processed = false
			if err := deps.Workbooks.Update(upload); err != nil {
				return err
			}
		}

		workbook, err := excelize.OpenReader(bytes.NewReader(file.Data))
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("unreadable workbook: %v", err))
			upload.ErrorMessage = summary.Errors[len(summary.Errors)-1]
			return deps.Workbooks.Update(upload)
		}
		defer workbook.Close()

		ingestErrors, sheetDate := IngestWorkbook(workbook, upload.ID, deps.Resolver, deps.Records)
		summary.Errors = append(summary.Errors, ingestErrors...)

		upload.SheetDate = sheetDate
		upload.Processed = len(summary.Errors) == 0
		upload.ErrorMessage = strings.Join(summary.Errors, "\n")
		if err := deps.Workbooks.Update(upload); err != nil {
			return err
		}

		summary.Processed = upload.Processed
		return nil
	})
	if err != nil {
		config.Logger.Error("Workbook ingestion failed",
			zap.String("file", file.Name),
			zap.Error(err),
		)
		summary.Processed = false
		summary.Errors = append(summary.Errors, err.Error())
	}
	return summary
}
