package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadedWorkbook tracks one uploaded Excel workbook per distinct file name.
// A re-upload of the same file name replaces the stored file and resets
// Processed rather than creating a second row.
type UploadedWorkbook struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FileName     string    `gorm:"uniqueIndex;not null" json:"file_name"`
	FilePath     string    `gorm:"not null" json:"file_path"`
	SheetDate    time.Time `gorm:"type:date" json:"sheet_date"`
	Processed    bool      `gorm:"default:false" json:"processed"`
	ErrorMessage string    `gorm:"type:text" json:"error_message"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
