package repository

import (
	"context"
	"itemtracker/internal/model"

	"gorm.io/gorm"
)

type LookupRepository interface {
	List(ctx context.Context, kind model.LookupKind) ([]*model.Lookup, error)
	Names(ctx context.Context, kind model.LookupKind) ([]string, error)
	Create(ctx context.Context, lookup *model.Lookup) error
	Delete(ctx context.Context, kind model.LookupKind, id string) error
}

type lookupRepoImpl struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepoImpl{
		db: db,
	}
}

func (r *lookupRepoImpl) List(ctx context.Context, kind model.LookupKind) ([]*model.Lookup, error) {
	var lookups []*model.Lookup
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("name ASC").
		Find(&lookups).Error

	if err != nil {
		return nil, err
	}

	return lookups, nil
}

func (r *lookupRepoImpl) Names(ctx context.Context, kind model.LookupKind) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.Lookup{}).
		Where("kind = ?", kind).
		Order("name ASC").
		Pluck("name", &names).Error

	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *lookupRepoImpl) Create(ctx context.Context, lookup *model.Lookup) error {
	return r.db.WithContext(ctx).Create(lookup).Error
}

// Delete removes the lookup value only. Items naming it keep the literal text.
func (r *lookupRepoImpl) Delete(ctx context.Context, kind model.LookupKind, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND kind = ?", id, kind).
		Delete(&model.Lookup{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
