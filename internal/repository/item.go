package repository

import (
	"context"
	"itemtracker/internal/model"
	"time"

	"gorm.io/gorm"
)

type ItemRepository interface {
	List(ctx context.Context, owner string) ([]*model.Item, error)
	Get(ctx context.Context, id string) (*model.Item, error)
	Create(ctx context.Context, item *model.Item) (string, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type itemRepoImpl struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepoImpl{
		db: db,
	}
}

// List returns the owner's items in fetch order. An empty owner lists every item.
func (r *itemRepoImpl) List(ctx context.Context, owner string) ([]*model.Item, error) {
	var items []*model.Item
	query := r.db.WithContext(ctx)
	if owner != "" {
		query = query.Where("email = ?", owner)
	}

	err := query.Order("created_at ASC").Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *itemRepoImpl) Get(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *itemRepoImpl) Create(ctx context.Context, item *model.Item) (string, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return "", err
	}
	return item.ID, nil
}

// Update writes only the given columns. The primary key and owner are never changed.
func (r *itemRepoImpl) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	delete(fields, "id")
	delete(fields, "email")
	fields["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *itemRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Item{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
