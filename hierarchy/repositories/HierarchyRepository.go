package repositories

import (
	"errors"

	"diocese-attendance-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HierarchyRepository interface {
	GetOrCreateArchdeaconry(name string) (*models.Archdeaconry, error)
	GetOrCreateParish(archdeaconryID uuid.UUID, name string) (*models.Parish, error)
	GetOrCreateCongregation(parishID uuid.UUID, name string) (*models.Congregation, error)
	GetAllArchdeaconries() ([]models.Archdeaconry, error)
	GetParishes(archdeaconryID string) ([]models.Parish, error)
	GetCongregations(parishID string) ([]models.Congregation, error)
	WithTx(tx *gorm.DB) HierarchyRepository
}

type hierarchyRepository struct {
	db *gorm.DB
}

func NewHierarchyRepository(db *gorm.DB) HierarchyRepository {
	return &hierarchyRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *hierarchyRepository) WithTx(tx *gorm.DB) HierarchyRepository {
	return &hierarchyRepository{db: tx}
}

// GetOrCreateArchdeaconry resolves an archdeaconry by its unique name,
// creating it when missing. A create race with a concurrent ingestion is
// resolved by re-fetching the row that won the unique constraint.
func (r *hierarchyRepository) GetOrCreateArchdeaconry(name string) (*models.Archdeaconry, error) {
	var arch models.Archdeaconry
	err := r.db.Where("name = ?", name).First(&arch).Error
	if err == nil {
		return &arch, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	arch = models.Archdeaconry{ID: uuid.New(), Name: name}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&arch).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("name = ?", name).First(&arch).Error; err != nil {
		return nil, err
	}
	return &arch, nil
}

// GetOrCreateParish resolves a parish by name within its archdeaconry.
func (r *hierarchyRepository) GetOrCreateParish(archdeaconryID uuid.UUID, name string) (*models.Parish, error) {
	var parish models.Parish
	err := r.db.Where("archdeaconry_id = ? AND name = ?", archdeaconryID, name).First(&parish).Error
	if err == nil {
		return &parish, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	parish = models.Parish{ID: uuid.New(), ArchdeaconryID: archdeaconryID, Name: name}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&parish).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("archdeaconry_id = ? AND name = ?", archdeaconryID, name).First(&parish).Error; err != nil {
		return nil, err
	}
	return &parish, nil
}

// GetOrCreateCongregation resolves a congregation by name within its parish.
func (r *hierarchyRepository) GetOrCreateCongregation(parishID uuid.UUID, name string) (*models.Congregation, error) {
	var congregation models.Congregation
	err := r.db.Where("parish_id = ? AND name = ?", parishID, name).First(&congregation).Error
	if err == nil {
		return &congregation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	congregation = models.Congregation{ID: uuid.New(), ParishID: parishID, Name: name, Active: true}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&congregation).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("parish_id = ? AND name = ?", parishID, name).First(&congregation).Error; err != nil {
		return nil, err
	}
	return &congregation, nil
}

func (r *hierarchyRepository) GetAllArchdeaconries() ([]models.Archdeaconry, error) {
	var archdeaconries []models.Archdeaconry
	err := r.db.Order("name ASC").Find(&archdeaconries).Error
	return archdeaconries, err
}

func (r *hierarchyRepository) GetParishes(archdeaconryID string) ([]models.Parish, error) {
	var parishes []models.Parish
	db := r.db.Model(&models.Parish{})
	if archdeaconryID != "" {
		db = db.Where("archdeaconry_id = ?", archdeaconryID)
	}
	err := db.Order("name ASC").Find(&parishes).Error
	return parishes, err
}

func (r *hierarchyRepository) GetCongregations(parishID string) ([]models.Congregation, error) {
	var congregations []models.Congregation
	db := r.db.Model(&models.Congregation{})
	if parishID != "" {
		db = db.Where("parish_id = ?", parishID)
	}
	err := db.Order("name ASC").Find(&congregations).Error
	return congregations, err
}
