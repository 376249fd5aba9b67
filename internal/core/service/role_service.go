package service

import (
	"context"

	"github.com/blendpos/pos-backend/internal/core/domain"
	"github.com/blendpos/pos-backend/internal/core/ports"
)

// CatalogRoleService exposes the read-mostly role catalog.
type CatalogRoleService struct {
	roles ports.RoleRepository
}

func NewCatalogRoleService(roles ports.RoleRepository) *CatalogRoleService {
	return &CatalogRoleService{roles: roles}
}

func (s *CatalogRoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}
