package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/loopp-client/models"
)

// ErrNoSelectedService is returned before any service has been selected.
var ErrNoSelectedService = errors.New("no service selected")

type selectionStore struct {
	repo StateRepository
	now  func() time.Time
}

// NewSelectionStore persists the last opened service under
// [SelectedServiceKey]. Only the latest selection is kept.
func NewSelectionStore(repo StateRepository) SelectionStore {
	return &selectionStore{repo: repo, now: time.Now}
}

func (s *selectionStore) SaveSelectedService(ctx context.Context, service models.Service) error {
	value, err := json.Marshal(service)
	if err != nil {
		return fmt.Errorf("error encoding selected service: %w", err)
	}

	return s.repo.PutState(ctx, StateEntry{
		Key:       SelectedServiceKey,
		Value:     value,
		UpdatedAt: s.now().UTC(),
	})
}

func (s *selectionStore) GetSelectedService(ctx context.Context) (models.Service, error) {
	entry, err := s.repo.GetState(ctx, SelectedServiceKey)
	if errors.Is(err, ErrStateNotFound) {
		return models.Service{}, ErrNoSelectedService
	}
	if err != nil {
		return models.Service{}, err
	}

	var service models.Service
	if err := json.Unmarshal(entry.Value, &service); err != nil {
		return models.Service{}, fmt.Errorf("error decoding selected service: %w", err)
	}

	return service, nil
}
