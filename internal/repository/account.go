package repository

import (
	"context"
	"itemtracker/internal/model"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
	Exists(ctx context.Context, username string) (bool, error)
}

type accountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepoImpl{db: db}
}

func (r *accountRepoImpl) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepoImpl) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&account).Error
	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountRepoImpl) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("username = ?", username).
		Count(&count).Error

	return count > 0, err
}
