package repositories

import (
	"time"

	"diocese-attendance-backend/db/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository interface {
	UpsertRecord(record *models.AttendanceRecord) error
	GetFilteredRecords(filters map[string]string, pageSize int, offset int) ([]models.AttendanceRecord, int64, error)
	GetRecordsInRange(start, end time.Time, archdeaconryID, parishID, congregationID string) ([]models.AttendanceRecord, error)
	WithTx(tx *gorm.DB) AttendanceRepository
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *attendanceRepository) WithTx(tx *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: tx}
}

// UpsertRecord creates the record, or overwrites the measures of the existing
// row for the same (congregation_id, sunday_date) pair. Last write wins.
func (r *attendanceRepository) UpsertRecord(record *models.AttendanceRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "congregation_id"}, {Name: "sunday_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"workbook_id",
			"archdeaconry_id",
			"parish_id",
			"sunday_school",
			"adults",
			"diff_abled",
			"youth",
			"total_collection",
			"banked",
			"unbanked",
			"remarks",
			"updated_at",
		}),
	}).Create(record).Error
}

// GetRecordsInRange loads the records the analytics engine aggregates over.
// Hierarchy names are preloaded for the rollup and ranking outputs.
func (r *attendanceRepository) GetRecordsInRange(start, end time.Time, archdeaconryID, parishID, congregationID string) ([]models.AttendanceRecord, error) {
	db := r.db.Model(&models.AttendanceRecord{}).
		Where("sunday_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02"))

	// Only the most specific hierarchy filter is passed down by the caller.
	if congregationID != "" {
		db = db.Where("congregation_id = ?", congregationID)
	} else if parishID != "" {
		db = db.Where("parish_id = ?", parishID)
	} else if archdeaconryID != "" {
		db = db.Where("archdeaconry_id = ?", archdeaconryID)
	}

	var records []models.AttendanceRecord
	err := db.
		Preload("Archdeaconry").
		Preload("Parish").
		Preload("Congregation").
		Order("sunday_date ASC").
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
