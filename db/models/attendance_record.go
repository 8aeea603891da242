package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AttendanceRecord stores weekly attendance and collection figures for one
// congregation on one Sunday. Exactly one row exists per
// (congregation_id, sunday_date) pair; re-ingestion overwrites the measures.
// ArchdeaconryID and ParishID are denormalized from the congregation for
// query efficiency and must stay consistent with it.
type AttendanceRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	WorkbookID     uuid.UUID `gorm:"type:uuid;not null;index" json:"workbook_id"`
	ArchdeaconryID uuid.UUID `gorm:"type:uuid;not null;index:idx_record_arch_parish" json:"archdeaconry_id"`
	ParishID       uuid.UUID `gorm:"type:uuid;not null;index:idx_record_arch_parish" json:"parish_id"`
	CongregationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_record_cong_sunday" json:"congregation_id"`
	SundayDate     time.Time `gorm:"type:date;not null;index;uniqueIndex:idx_record_cong_sunday" json:"sunday_date"`

	SundaySchool int `gorm:"default:0" json:"sunday_school"`
	Adults       int `gorm:"default:0" json:"adults"`
	DiffAbled    int `gorm:"default:0" json:"diff_abled"`
	Youth        int `gorm:"default:0" json:"youth"`

	TotalCollection decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_collection"`
	Banked          decimal.Decimal `gorm:"type:decimal(12,2)" json:"banked"`
	Unbanked        decimal.Decimal `gorm:"type:decimal(12,2)" json:"unbanked"`
	Remarks         string          `gorm:"type:text" json:"remarks"`

	Workbook     *UploadedWorkbook `gorm:"foreignKey:WorkbookID;constraint:OnDelete:CASCADE" json:"workbook,omitempty"`
	Archdeaconry *Archdeaconry     `gorm:"foreignKey:ArchdeaconryID;constraint:OnDelete:RESTRICT" json:"archdeaconry,omitempty"`
	Parish       *Parish           `gorm:"foreignKey:ParishID;constraint:OnDelete:RESTRICT" json:"parish,omitempty"`
	Congregation *Congregation     `gorm:"foreignKey:CongregationID;constraint:OnDelete:RESTRICT" json:"congregation,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TotalAttendance is the derived headcount used by the analytics engine.
func (r *AttendanceRecord) TotalAttendance() int {
	return r.SundaySchool + r.Adults + r.Youth + r.DiffAbled
}
