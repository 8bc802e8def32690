package store

import (
	"context"
	"time"

	"github.com/MKhiriev/loopp-client/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// Keys of the persisted client state. The names match the cookies the web
// client used, so exported state stays recognizable.
const (
	CredentialKey      = "authToken"
	SelectedServiceKey = "selected-service"
)

// StateEntry is one row of persisted client state.
type StateEntry struct {
	Key       string
	Value     []byte
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

// StateRepository is the low-level key/value store behind the typed stores.
type StateRepository interface {
	GetState(ctx context.Context, key string) (StateEntry, error)
	PutState(ctx context.Context, entry StateEntry) error
	DeleteState(ctx context.Context, key string) error
}

// CredentialStore persists the single active session credential.
// Setting a credential overwrites the previous one.
type CredentialStore interface {
	GetCredential(ctx context.Context) (models.Credential, error)
	SetCredential(ctx context.Context, credential models.Credential) error
	DeleteCredential(ctx context.Context) error
}

// SelectionStore remembers the service the user last opened.
type SelectionStore interface {
	SaveSelectedService(ctx context.Context, service models.Service) error
	GetSelectedService(ctx context.Context) (models.Service, error)
}
