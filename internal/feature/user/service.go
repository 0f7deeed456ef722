package user

import (
	"context"

	"go-gin-crud-starter/internal/apperr"
	"go-gin-crud-starter/internal/crud"
	"go-gin-crud-starter/internal/integration/openid"
)

// Service adds user-specific rules on top of the generic CRUD service.
type Service struct {
	*crud.Service[User, *User, Create, Update]
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{
		Service: crud.NewService[User, *User, Create, Update](repo, apperr.EntityUser),
		repo:    repo,
	}
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound(apperr.EntityUser, username)
	}
	return u, nil
}

func (s *Service) Page(ctx context.Context, offset, limit int, q string, includeRemoved bool) ([]User, int64, error) {
	return s.repo.Page(ctx, offset, limit, q, includeRemoved)
}

func (s *Service) SetPasswordHash(ctx context.Context, id, hash string) error {
	return s.repo.SetPasswordHash(ctx, id, hash)
}

// SyncFromProvider returns the persisted record for an OIDC identity,
// creating it on first login. The provider subject becomes the record id.
func (s *Service) SyncFromProvider(ctx context.Context, info *openid.UserInfo) (*User, error) {
	existing, err := s.repo.Get(ctx, info.Sub, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return s.Create(ctx, Create{
		ID:         info.Sub,
		Username:   info.PreferredUsername,
		FirstName:  info.GivenName,
		SecondName: info.FamilyName,
		Email:      info.Email,
	})
}
