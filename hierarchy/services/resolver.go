package services

import (
	"github.com/google/uuid"

	"diocese-attendance-backend/db/models"
)

// Define a minimal interface for what hierarchy resolution needs
type HierarchyStore interface {
	GetOrCreateArchdeaconry(name string) (*models.Archdeaconry, error)
	GetOrCreateParish(archdeaconryID uuid.UUID, name string) (*models.Parish, error)
	GetOrCreateCongregation(parishID uuid.UUID, name string) (*models.Congregation, error)
}

// ResolvedHierarchy holds the three entity ids a workbook row maps onto.
type ResolvedHierarchy struct {
	ArchdeaconryID uuid.UUID
	ParishID       uuid.UUID
	CongregationID uuid.UUID
}

// Resolver resolves (archdeaconry, parish, congregation) name triples to
// entity ids, creating missing levels lazily. Triples already seen during
// this ingestion run are served from an in-memory cache so a workbook with
// hundreds of rows for the same congregation hits the store once.
type Resolver struct {
	store HierarchyStore
	cache map[string]ResolvedHierarchy
}

func NewResolver(store HierarchyStore) *Resolver {
	return &Resolver{
		store: store,
		cache: make(map[string]ResolvedHierarchy),
	}
}

func (r *Resolver) Resolve(archdeaconryName, parishName, congregationName string) (ResolvedHierarchy, error) {
	key := archdeaconryName + "\x00" + parishName + "\x00" + congregationName
	if resolved, ok := r.cache[key]; ok {
		return resolved, nil
	}

	arch, err := r.store.GetOrCreateArchdeaconry(archdeaconryName)
	if err != nil {
		return ResolvedHierarchy{}, err
	}
	parish, err := r.store.GetOrCreateParish(arch.ID, parishName)
	if err != nil {
		return ResolvedHierarchy{}, err
	}
	congregation, err := r.store.GetOrCreateCongregation(parish.ID, congregationName)
	if err != nil {
		return ResolvedHierarchy{}, err
	}

	resolved := ResolvedHierarchy{
		ArchdeaconryID: arch.ID,
		ParishID:       parish.ID,
		CongregationID: congregation.ID,
	}
	r.cache[key] = resolved
	return resolved, nil
}
