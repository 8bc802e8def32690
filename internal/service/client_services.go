package service

import (
	"github.com/MKhiriev/loopp-client/internal/adapter"
	"github.com/MKhiriev/loopp-client/internal/cache"
	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/navigation"
	"github.com/MKhiriev/loopp-client/internal/store"
	"github.com/MKhiriev/loopp-client/internal/validators"
)

type ClientServices struct {
	AuthService    ClientAuthService
	UsersService   ClientUsersService
	CatalogService ClientCatalogService
}

// ClientDeps are the collaborators shared by the client services.
type ClientDeps struct {
	Adapter   adapter.ServerAdapter
	Session   CredentialSession
	Selection store.SelectionStore
	Cache     *cache.Cache
	Navigator navigation.Navigator
	Logger    *logger.Logger
}

func NewClientServices(deps ClientDeps) *ClientServices {
	validator := validators.NewFormValidator()

	return &ClientServices{
		AuthService:    NewClientAuthService(deps.Adapter, deps.Session, deps.Cache, deps.Navigator, validator, deps.Logger),
		UsersService:   NewClientUsersService(deps.Adapter, deps.Cache),
		CatalogService: NewClientCatalogService(deps.Adapter, deps.Selection, deps.Cache, deps.Navigator, validator, deps.Logger),
	}
}
