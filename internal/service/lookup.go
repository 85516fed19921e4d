package service

import (
	"context"
	"fmt"
	"itemtracker/internal/dto"
	"itemtracker/internal/model"
	"itemtracker/internal/repository"

	"github.com/google/uuid"
)

type LookupService interface {
	List(ctx context.Context, kind model.LookupKind) ([]*model.Lookup, error)
	Options(ctx context.Context) (*dto.LookupOptions, error)
	Create(ctx context.Context, kind model.LookupKind, name string) (*model.Lookup, error)
	Delete(ctx context.Context, kind model.LookupKind, id string) error
}

type lookupServiceImpl struct {
	lookupRepo repository.LookupRepository
}

func NewLookupService(lookupRepo repository.LookupRepository) LookupService {
	return &lookupServiceImpl{
		lookupRepo: lookupRepo,
	}
}

func (s *lookupServiceImpl) List(ctx context.Context, kind model.LookupKind) ([]*model.Lookup, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLookupKind, kind)
	}
	return s.lookupRepo.List(ctx, kind)
}

// Options returns the names offered by item forms. Reviewer names back both
// the reviewer and the paid-by pickers.
func (s *lookupServiceImpl) Options(ctx context.Context) (*dto.LookupOptions, error) {
	users, err := s.lookupRepo.Names(ctx, model.LookupUser)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	platforms, err := s.lookupRepo.Names(ctx, model.LookupPlatform)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	reviewers, err := s.lookupRepo.Names(ctx, model.LookupReviewer)
	if err != nil {
		return nil, fmt.Errorf("list reviewers: %w", err)
	}

	return &dto.LookupOptions{
		UserIDs:   nonNil(users),
		Platforms: nonNil(platforms),
		Reviewers: nonNil(reviewers),
		PaidBy:    nonNil(reviewers),
	}, nil
}

func (s *lookupServiceImpl) Create(ctx context.Context, kind model.LookupKind, name string) (*model.Lookup, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLookupKind, kind)
	}
	name = capitalizeFirst(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	lookup := &model.Lookup{
		ID:   uuid.NewString(),
		Kind: kind,
		Name: name,
	}
	if err := s.lookupRepo.Create(ctx, lookup); err != nil {
		return nil, fmt.Errorf("store %s lookup: %w", kind, err)
	}

	return lookup, nil
}

func (s *lookupServiceImpl) Delete(ctx context.Context, kind model.LookupKind, id string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLookupKind, kind)
	}
	return s.lookupRepo.Delete(ctx, kind, id)
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
