package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	IsRemoved() bool
}

// BaseEntity provides common fields for all entities.
// Records are never hard deleted; Removed marks a soft delete and every read
// used by pricing ignores removed rows.
type BaseEntity struct {
	ID        uuid.UUID
	Removed   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// IsRemoved reports whether the entity was soft deleted
func (e *BaseEntity) IsRemoved() bool {
	return e.Removed
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
