package service

import (
	"context"

	"github.com/MKhiriev/loopp-client/internal/pagination"
	"github.com/MKhiriev/loopp-client/models"
)

// CredentialSession is the part of the session the services need.
type CredentialSession interface {
	Get(ctx context.Context) (models.Credential, bool)
	Set(ctx context.Context, token string) (models.Credential, error)
	Clear(ctx context.Context) error
}

// CurrentUser is the result of the current-user read. Authenticated is
// false when there is no active credential; that is not an error.
type CurrentUser struct {
	User          models.User
	Authenticated bool
}

// ClientAuthService defines the client-side contract for registration,
// authentication and the signed-in user.
type ClientAuthService interface {
	// SignUp validates req, registers the user and, on success, stores the
	// returned credential and navigates to the home route of the user's
	// role. An unknown role is logged and causes no navigation.
	SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error)

	// Login is SignUp for an existing account.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// SignOut forgets the credential and every cached read, then navigates
	// to the landing route.
	SignOut(ctx context.Context) error

	// CurrentUser reads the signed-in user. Without a credential it returns
	// an unauthenticated result and no error, and sends nothing.
	CurrentUser(ctx context.Context) (CurrentUser, error)

	// Authenticated reports whether a usable credential is stored.
	Authenticated(ctx context.Context) bool

	SignUpState() State[models.AuthResponse]
	LoginState() State[models.AuthResponse]
	CurrentUserState() State[CurrentUser]
}

// ClientUsersService defines the read side of the user directory.
type ClientUsersService interface {
	// ByRole lists the users of role. Without a credential it returns an
	// empty list.
	ByRole(ctx context.Context, role models.Role) ([]models.User, error)

	ByRoleState() State[[]models.User]
}

// ClientCatalogService defines the client-side contract for the service
// catalogue: paginated listing, search, administration and the remembered
// selection.
type ClientCatalogService interface {
	// List returns one page, served from the cache when possible.
	List(ctx context.Context, page, limit int) (models.ServicesPage, error)

	// RefetchWithParams drops the cached page and fetches it again.
	RefetchWithParams(ctx context.Context, page, limit int) (models.ServicesPage, error)

	// Feed returns a "load more" listing of limit services per page.
	Feed(limit int) (*pagination.Accumulator[models.Service], error)

	// Search runs a free-text search. A blank term yields an empty result
	// without a backend call.
	Search(ctx context.Context, term string) ([]models.Service, error)

	// Add, Edit and Delete validate their input, perform the write and on
	// success invalidate every cached listing and search result.
	Add(ctx context.Context, payload models.ServicePayload) (models.ServiceResponse, error)
	Edit(ctx context.Context, id string, payload models.ServicePayload) (models.ServiceResponse, error)
	Delete(ctx context.Context, id string) (models.MessageResponse, error)

	// SelectService remembers svc as the last opened service and navigates
	// to its detail route.
	SelectService(ctx context.Context, svc models.Service) error

	// SelectedService returns the last opened service, or
	// ErrNoSelectedService.
	SelectedService(ctx context.Context) (models.Service, error)

	// SuggestCategories lists the categories matching term.
	SuggestCategories(term string) []models.Category

	ListState() State[models.ServicesPage]
	SearchState() State[[]models.Service]
	AddState() State[models.ServiceResponse]
	EditState() State[models.ServiceResponse]
	DeleteState() State[models.MessageResponse]
}
