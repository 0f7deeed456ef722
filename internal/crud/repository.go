package crud

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-gin-crud-starter/pkg/utils"
)

func nowUTC() *time.Time {
	t := time.Now().UTC()
	return &t
}

// Repository is the generic data-access contract over one entity kind.
// Reads surface absence as (nil, nil) — deciding whether absence is fatal
// belongs to the service layer.
type Repository[M any, C CreateInput[M], U UpdateInput] interface {
	Get(ctx context.Context, id string, includeRemoved bool) (*M, error)
	GetMulti(ctx context.Context, skip, limit int) ([]M, error)
	GetAll(ctx context.Context, includeRemoved bool) ([]M, error)
	Create(ctx context.Context, in C) (*M, error)
	Update(ctx context.Context, existing *M, in U) (*M, error)
	Restore(ctx context.Context, existing *M) (*M, error)
	Remove(ctx context.Context, id string) (*M, error)
	SoftRemove(ctx context.Context, existing *M) (*M, error)
}

// GormRepository implements Repository against a gorm-managed store.
// Every mutation re-reads the row post-commit instead of trusting the
// in-memory object, so storage-assigned defaults are always visible to the
// caller regardless of backend quirks.
type GormRepository[M any, PM Ptr[M], C CreateInput[M], U UpdateInput] struct {
	db *gorm.DB
}

func NewGormRepository[M any, PM Ptr[M], C CreateInput[M], U UpdateInput](db *gorm.DB) *GormRepository[M, PM, C, U] {
	return &GormRepository[M, PM, C, U]{db: db}
}

// DB exposes the underlying handle for entity-specific queries built on top
// of the generic set (e.g. lookups by unique column).
func (r *GormRepository[M, PM, C, U]) DB() *gorm.DB { return r.db }

func (r *GormRepository[M, PM, C, U]) scope(ctx context.Context, includeRemoved bool) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(M))
	if !includeRemoved {
		q = q.Where("deleted_at IS NULL")
	}
	return q
}

func (r *GormRepository[M, PM, C, U]) Get(ctx context.Context, id string, includeRemoved bool) (*M, error) {
	if id == "" {
		return nil, nil
	}
	var m M
	err := r.scope(ctx, includeRemoved).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormRepository[M, PM, C, U]) GetMulti(ctx context.Context, skip, limit int) ([]M, error) {
	var items []M
	err := r.scope(ctx, false).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *GormRepository[M, PM, C, U]) GetAll(ctx context.Context, includeRemoved bool) ([]M, error) {
	var items []M
	err := r.scope(ctx, includeRemoved).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *GormRepository[M, PM, C, U]) Create(ctx context.Context, in C) (*M, error) {
	m := in.Model()
	pm := PM(&m)
	if pm.PK() == "" {
		pm.SetPK(utils.NewID())
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return r.reread(ctx, pm.PK())
}

func (r *GormRepository[M, PM, C, U]) Update(ctx context.Context, existing *M, in U) (*M, error) {
	changes := in.Changes()
	if len(changes) > 0 {
		if err := r.db.WithContext(ctx).Model(existing).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return r.reread(ctx, PM(existing).PK())
}

func (r *GormRepository[M, PM, C, U]) Restore(ctx context.Context, existing *M) (*M, error) {
	err := r.db.WithContext(ctx).Model(existing).Update("deleted_at", nil).Error
	if err != nil {
		return nil, err
	}
	return r.reread(ctx, PM(existing).PK())
}

// Remove deletes permanently. The row is looked up removed-visible first so
// the caller gets the final snapshot back; a miss is an error here, not a
// sentinel.
func (r *GormRepository[M, PM, C, U]) Remove(ctx context.Context, id string) (*M, error) {
	m, err := r.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(M)).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *GormRepository[M, PM, C, U]) SoftRemove(ctx context.Context, existing *M) (*M, error) {
	err := r.db.WithContext(ctx).Model(existing).Update("deleted_at", nowUTC()).Error
	if err != nil {
		return nil, err
	}
	return r.reread(ctx, PM(existing).PK())
}

// reread fetches post-commit truth with removed rows visible, so restore and
// soft-remove return the cleared/stamped state even though default reads
// would filter the row out.
func (r *GormRepository[M, PM, C, U]) reread(ctx context.Context, id string) (*M, error) {
	m, err := r.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}
