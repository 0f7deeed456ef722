package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-crud-starter/internal/crud"
)

// Repository extends the generic set with user-specific lookups.
type Repository struct {
	*crud.GormRepository[User, *User, Create, Update]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{crud.NewGormRepository[User, *User, Create, Update](db)}
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.DB().WithContext(ctx).
		Where("deleted_at IS NULL").
		Where("username = ?", username).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Page is the admin listing: offset/limit with optional fuzzy search and
// soft-deleted rows on demand.
func (r *Repository) Page(ctx context.Context, offset, limit int, q string, includeRemoved bool) ([]User, int64, error) {
	tx := r.DB().WithContext(ctx).Model(&User{})
	if !includeRemoved {
		tx = tx.Where("deleted_at IS NULL")
	}
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []User
	err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// SetPasswordHash is used only by the local auth provider's auto-register.
func (r *Repository) SetPasswordHash(ctx context.Context, id, hash string) error {
	return r.DB().WithContext(ctx).Model(&User{}).Where("id = ?", id).
		Update("password_hash", hash).Error
}
