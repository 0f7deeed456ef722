// Package crud holds the generic persistence core: the embedded record
// head shared by every entity, the repository over one entity kind and the
// business-rule service enforcing the soft-delete lifecycle.
package crud

import "time"

// Base is embedded by every persisted entity. DeletedAt is a plain nullable
// column, NOT gorm's soft-delete hook: the repository threads the filter
// through every read explicitly so the behavior stays auditable and portable
// across drivers.
type Base struct {
	ID        string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (b *Base) PK() string { return b.ID }

func (b *Base) SetPK(id string) { b.ID = id }

func (b *Base) Removed() *time.Time { return b.DeletedAt }

// Record is what a pointer to an entity must provide to the generic layers.
// Entities get it for free by embedding Base.
type Record interface {
	PK() string
	SetPK(id string)
	Removed() *time.Time
}

// Ptr ties an entity type to its pointer form carrying the Record methods.
type Ptr[M any] interface {
	*M
	Record
}

// CreateInput materializes a new entity from a create DTO.
type CreateInput[M any] interface {
	Model() M
}

// UpdateInput yields the partial patch: only fields explicitly present in
// the request appear in the map, everything else stays untouched.
type UpdateInput interface {
	Changes() map[string]any
}
