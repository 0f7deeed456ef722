package crud

import (
	"context"
	"fmt"

	"go-gin-crud-starter/internal/apperr"
)

// Service is the business layer over one Repository. This is the boundary
// where repository absence turns into an explicit EntityNotFound and where
// soft-delete state transitions are enforced:
//
//	Active --SoftRemove--> SoftDeleted --Restore--> Active
//	Active/SoftDeleted --Remove--> Gone (terminal)
//
// Update is only valid from Active; restoring an active record and
// soft-deleting a soft-deleted record are errors, not no-ops.
type Service[M any, PM Ptr[M], C CreateInput[M], U UpdateInput] struct {
	repo   Repository[M, C, U]
	entity apperr.Entity
}

func NewService[M any, PM Ptr[M], C CreateInput[M], U UpdateInput](
	repo Repository[M, C, U],
	entity apperr.Entity,
) *Service[M, PM, C, U] {
	return &Service[M, PM, C, U]{repo: repo, entity: entity}
}

func (s *Service[M, PM, C, U]) Entity() apperr.Entity { return s.entity }

func (s *Service[M, PM, C, U]) Get(ctx context.Context, id string, includeRemoved bool) (*M, error) {
	obj, err := s.repo.Get(ctx, id, includeRemoved)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, apperr.NotFound(s.entity, id)
	}
	return obj, nil
}

func (s *Service[M, PM, C, U]) GetAll(ctx context.Context, includeRemoved bool) ([]M, error) {
	return s.repo.GetAll(ctx, includeRemoved)
}

func (s *Service[M, PM, C, U]) GetMulti(ctx context.Context, skip, limit int) ([]M, error) {
	return s.repo.GetMulti(ctx, skip, limit)
}

func (s *Service[M, PM, C, U]) Create(ctx context.Context, in C) (*M, error) {
	return s.repo.Create(ctx, in)
}

// Update resolves the target excluding removed records on purpose: a
// soft-deleted record cannot be updated without being restored first.
func (s *Service[M, PM, C, U]) Update(ctx context.Context, id string, in U) (*M, error) {
	obj, err := s.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, obj, in)
}

func (s *Service[M, PM, C, U]) Restore(ctx context.Context, id string) (*M, error) {
	obj, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if PM(obj).Removed() == nil {
		return nil, apperr.BadRequest(fmt.Sprintf("A %s was not soft deleted.", s.entity))
	}
	return s.repo.Restore(ctx, obj)
}

func (s *Service[M, PM, C, U]) Delete(ctx context.Context, id string, hardRemove bool) (*M, error) {
	obj, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if hardRemove {
		return s.repo.Remove(ctx, id)
	}
	if PM(obj).Removed() != nil {
		return nil, apperr.BadRequest(fmt.Sprintf("A %s is already soft deleted.", s.entity))
	}
	return s.repo.SoftRemove(ctx, obj)
}
