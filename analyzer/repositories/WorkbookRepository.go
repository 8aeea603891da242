package repositories

import (
	"errors"

	"diocese-attendance-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkbookRepository interface {
	GetOrCreateByFileName(fileName, filePath string) (*models.UploadedWorkbook, bool, error)
	Update(workbook *models.UploadedWorkbook) error
	GetAllUploads() ([]models.UploadedWorkbook, error)
	WithTx(tx *gorm.DB) WorkbookRepository
}

type workbookRepository struct {
	db *gorm.DB
}

func NewWorkbookRepository(db *gorm.DB) WorkbookRepository {
	return &workbookRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *workbookRepository) WithTx(tx *gorm.DB) WorkbookRepository {
	return &workbookRepository{db: tx}
}

// GetOrCreateByFileName returns the workbook row for the given file name,
// creating it when missing. The second return value reports whether a new
// row was created. File name is the dedup key; a concurrent create race
// resolves to the row that won the unique constraint.
func (r *workbookRepository) GetOrCreateByFileName(fileName, filePath string) (*models.UploadedWorkbook, bool, error) {
	var workbook models.UploadedWorkbook
	err := r.db.Where("file_name = ?", fileName).First(&workbook).Error
	if err == nil {
		return &workbook, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	workbook = models.UploadedWorkbook{
		ID:       uuid.New(),
		FileName: fileName,
		FilePath: filePath,
	}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&workbook).Error; err != nil {
		return nil, false, err
	}

	var existing models.UploadedWorkbook
	if err := r.db.Where("file_name = ?", fileName).First(&existing).Error; err != nil {
		return nil, false, err
	}
	created := existing.ID == workbook.ID
	return &existing, created, nil
}

func (r *workbookRepository) Update(workbook *models.UploadedWorkbook) error {
	return r.db.Save(workbook).Error
}

func (r *workbookRepository) GetAllUploads() ([]models.UploadedWorkbook, error) {
	var uploads []models.UploadedWorkbook
	err := r.db.Order("sheet_date DESC").Order("created_at DESC").Find(&uploads).Error
	return uploads, err
}
