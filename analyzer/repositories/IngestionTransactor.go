package repositories

import (
	"diocese-attendance-backend/analyzer/services"
	attendance_repositories "diocese-attendance-backend/attendance/repositories"
	hierarchy_repositories "diocese-attendance-backend/hierarchy/repositories"
	hierarchy_services "diocese-attendance-backend/hierarchy/services"

	"gorm.io/gorm"
)

// ingestionTransactor binds all stores one file's ingestion writes through
// to a single database transaction, so the persisted records always match
// the reported error list. The hierarchy resolver is rebuilt per
// transaction; its name-triple cache is scoped to one ingestion run.
type ingestionTransactor struct {
	db             *gorm.DB
	workbookRepo   WorkbookRepository
	hierarchyRepo  hierarchy_repositories.HierarchyRepository
	attendanceRepo attendance_repositories.AttendanceRepository
}

func NewIngestionTransactor(
	db *gorm.DB,
	workbookRepo WorkbookRepository,
	hierarchyRepo hierarchy_repositories.HierarchyRepository,
	attendanceRepo attendance_repositories.AttendanceRepository,
) services.Transactor {
	return &ingestionTransactor{
		db:             db,
		workbookRepo:   workbookRepo,
		hierarchyRepo:  hierarchyRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (t *ingestionTransactor) InTransaction(fn func(deps services.IngestionDeps) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(services.IngestionDeps{
			Workbooks: t.workbookRepo.WithTx(tx),
			Resolver:  hierarchy_services.NewResolver(t.hierarchyRepo.WithTx(tx)),
			Records:   t.attendanceRepo.WithTx(tx),
		})
	})
}
