package service

import (
	"context"

	"github.com/MKhiriev/loopp-client/internal/adapter"
	"github.com/MKhiriev/loopp-client/internal/cache"
	"github.com/MKhiriev/loopp-client/models"
)

const resourceUsersByRole = "usersByRole"

type clientUsersService struct {
	byRole *Query[models.Role, []models.User]
}

func NewClientUsersService(serverAdapter adapter.ServerAdapter, c *cache.Cache) ClientUsersService {
	return &clientUsersService{
		byRole: NewQuery(c, resourceUsersByRole,
			func(role models.Role) map[string]any { return map[string]any{"role": role} },
			serverAdapter.GetUsersByRole,
		),
	}
}

func (u *clientUsersService) ByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return u.byRole.Load(ctx, role)
}

func (u *clientUsersService) ByRoleState() State[[]models.User] {
	return u.byRole.State()
}
