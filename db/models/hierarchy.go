package models

import (
	"time"

	"github.com/google/uuid"
)

// Archdeaconry is the top level of the diocesan hierarchy.
type Archdeaconry struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	Parishes []Parish `gorm:"foreignKey:ArchdeaconryID" json:"parishes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Parish belongs to one Archdeaconry. Name is unique within its archdeaconry.
type Parish struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ArchdeaconryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_parish_name_per_arch" json:"archdeaconry_id"`
	Name           string    `gorm:"not null;uniqueIndex:idx_parish_name_per_arch" json:"name"`
	Code           string    `json:"code"`
	Description    string    `gorm:"type:text" json:"description"`

	Archdeaconry  *Archdeaconry  `gorm:"foreignKey:ArchdeaconryID;constraint:OnDelete:CASCADE" json:"archdeaconry,omitempty"`
	Congregations []Congregation `gorm:"foreignKey:ParishID" json:"congregations,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Congregation is a local church under a Parish. Name is unique within its parish.
type Congregation struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ParishID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_congregation_name_per_parish" json:"parish_id"`
	Name     string    `gorm:"not null;uniqueIndex:idx_congregation_name_per_parish" json:"name"`
	Code     string    `json:"code"`
	Address  string    `json:"address"`
	Active   bool      `gorm:"default:true" json:"active"`

	Parish *Parish `gorm:"foreignKey:ParishID;constraint:OnDelete:CASCADE" json:"parish,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
