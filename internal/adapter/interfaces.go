package adapter

import (
	"context"

	"github.com/MKhiriev/loopp-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter performs one REST operation per method against the Loopp
// backend. Every returned error is an [*APIError] whose Error() text can be
// shown to the user as is.
type ServerAdapter interface {
	// SignUp registers a user. POST /users/sign-up.
	SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error)

	// Login exchanges email and password for a credential. POST /users/sign-in.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// GetCurrentUser returns the user owning the active credential.
	// Without a credential it returns ok == false and sends nothing.
	// GET /users/get-user-info.
	GetCurrentUser(ctx context.Context) (user models.User, ok bool, err error)

	// GetUsersByRole lists users of role. Without a credential it returns an
	// empty list and sends nothing. GET /users/get-user-by-role/{role}.
	GetUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)

	// ListServices returns one page of services together with the total
	// count. GET /services/get-services?page=&limit=.
	ListServices(ctx context.Context, params models.ListServicesParams) (models.ServicesPage, error)

	// SearchServices runs a free-text search. GET {search path}?term=.
	SearchServices(ctx context.Context, term string) ([]models.Service, error)

	// AddService creates a service from a multipart form.
	// POST /services/add-service.
	AddService(ctx context.Context, payload models.ServicePayload) (models.ServiceResponse, error)

	// EditService replaces the fields of service id.
	// POST /services/edit-service/{id}.
	EditService(ctx context.Context, id string, payload models.ServicePayload) (models.ServiceResponse, error)

	// DeleteService removes service id. DELETE /services/delete-service/{id}.
	DeleteService(ctx context.Context, id string) (models.MessageResponse, error)
}

// TokenSource yields the bearer token to attach, or "" when unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a fixed [TokenSource].
type StaticToken string

func (t StaticToken) Token(context.Context) string { return string(t) }
