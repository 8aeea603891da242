package repositories

import (
	"diocese-attendance-backend/db/models"

	"gorm.io/gorm"
)

// recordsQueryBuilder builds queries for attendance record filtering
type recordsQueryBuilder struct {
	query   *gorm.DB
	filters map[string]string
}

func newRecordsQueryBuilder(db *gorm.DB, filters map[string]string) *recordsQueryBuilder {
	return &recordsQueryBuilder{
		query:   db.Model(&models.AttendanceRecord{}),
		filters: filters,
	}
}

func (rqb *recordsQueryBuilder) applyHierarchyFilters() *recordsQueryBuilder {
	if archdeaconryID, ok := rqb.filters["archdeaconry"]; ok {
		rqb.query = rqb.query.Where("archdeaconry_id = ?", archdeaconryID)
	}
	if parishID, ok := rqb.filters["parish"]; ok {
		rqb.query = rqb.query.Where("parish_id = ?", parishID)
	}
	if congregationID, ok := rqb.filters["congregation"]; ok {
		rqb.query = rqb.query.Where("congregation_id = ?", congregationID)
	}
	return rqb
}

func (rqb *recordsQueryBuilder) applyDateRangeFilter() *recordsQueryBuilder {
	startDate := rqb.filters["start_date"]
	endDate := rqb.filters["end_date"]

	if startDate != "" && startDate != "null" {
		rqb.query = rqb.query.Where("sunday_date >= ?", startDate)
	}
	if endDate != "" && endDate != "null" {
		rqb.query = rqb.query.Where("sunday_date <= ?", endDate)
	}
	return rqb
}

func (rqb *recordsQueryBuilder) applyActiveCongregationFilter() *recordsQueryBuilder {
	if active, ok := rqb.filters["active"]; ok {
		rqb.query = rqb.query.
			Joins("JOIN congregations ON congregations.id = attendance_records.congregation_id").
			Where("congregations.active = ?", active == "true")
	}
	return rqb
}

func (rqb *recordsQueryBuilder) applyLatestOrder() *recordsQueryBuilder {
	rqb.query = rqb.query.Order("sunday_date DESC").Order("created_at DESC")
	return rqb
}

func (rqb *recordsQueryBuilder) Limit(limit int) *recordsQueryBuilder {
	rqb.query = rqb.query.Limit(limit)
	return rqb
}

func (rqb *recordsQueryBuilder) Offset(offset int) *recordsQueryBuilder {
	rqb.query = rqb.query.Offset(offset)
	return rqb
}

// GetFilteredRecords returns filtered attendance records with pagination
func (r *attendanceRepository) GetFilteredRecords(filters map[string]string, pageSize int, offset int) ([]models.AttendanceRecord, int64, error) {
	rqb := newRecordsQueryBuilder(r.db, filters).applyHierarchyFilters().applyDateRangeFilter().applyActiveCongregationFilter().applyLatestOrder()
	rqb2 := newRecordsQueryBuilder(r.db, filters).applyHierarchyFilters().applyDateRangeFilter().applyActiveCongregationFilter()

	rqb = rqb.Limit(pageSize).Offset(offset)

	var records []models.AttendanceRecord
	if err := rqb.query.Preload("Archdeaconry").Preload("Parish").Preload("Congregation").Find(&records).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	if err := rqb2.query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
