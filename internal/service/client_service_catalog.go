package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/loopp-client/internal/adapter"
	"github.com/MKhiriev/loopp-client/internal/cache"
	"github.com/MKhiriev/loopp-client/internal/logger"
	"github.com/MKhiriev/loopp-client/internal/navigation"
	"github.com/MKhiriev/loopp-client/internal/pagination"
	"github.com/MKhiriev/loopp-client/internal/store"
	"github.com/MKhiriev/loopp-client/internal/validators"
	"github.com/MKhiriev/loopp-client/models"
)

const (
	resourceServices = "services"
	resourceSearch   = "search"
)

type editInput struct {
	ID      string
	Payload models.ServicePayload
}

type clientCatalogService struct {
	adapter   adapter.ServerAdapter
	selection store.SelectionStore
	navigator navigation.Navigator
	validator validators.Validator
	cache     *cache.Cache
	logger    *logger.Logger

	list   *Query[models.ListServicesParams, models.ServicesPage]
	search *Query[string, []models.Service]

	add  *Mutation[models.ServicePayload, models.ServiceResponse]
	edit *Mutation[editInput, models.ServiceResponse]
	del  *Mutation[string, models.MessageResponse]
}

func NewClientCatalogService(
	serverAdapter adapter.ServerAdapter,
	selection store.SelectionStore,
	c *cache.Cache,
	navigator navigation.Navigator,
	validator validators.Validator,
	logger *logger.Logger,
) ClientCatalogService {
	s := &clientCatalogService{
		adapter:   serverAdapter,
		selection: selection,
		navigator: navigator,
		validator: validator,
		cache:     c,
		logger:    logger,
	}

	s.list = NewQuery(c, resourceServices,
		func(p models.ListServicesParams) map[string]any {
			return map[string]any{"page": p.Page, "limit": p.Limit}
		},
		serverAdapter.ListServices,
	)

	s.search = NewQuery(c, resourceSearch,
		func(term string) map[string]any { return map[string]any{"term": term} },
		serverAdapter.SearchServices,
	)

	s.add = NewMutation(func(ctx context.Context, payload models.ServicePayload) (models.ServiceResponse, error) {
		if err := s.validator.Validate(ctx, payload); err != nil {
			return models.ServiceResponse{}, err
		}
		return s.adapter.AddService(ctx, payload)
	}).OnSuccess(func(_ context.Context, _ models.ServicePayload, resp models.ServiceResponse) error {
		s.invalidateListings("Add", resp.Service.ID)
		return nil
	}).OnError(logFailure[models.ServicePayload](logger, "Add"))

	s.edit = NewMutation(func(ctx context.Context, in editInput) (models.ServiceResponse, error) {
		if strings.TrimSpace(in.ID) == "" {
			return models.ServiceResponse{}, ErrEmptyServiceID
		}
		if err := s.validator.Validate(ctx, in.Payload); err != nil {
			return models.ServiceResponse{}, err
		}
		return s.adapter.EditService(ctx, in.ID, in.Payload)
	}).OnSuccess(func(_ context.Context, in editInput, _ models.ServiceResponse) error {
		s.invalidateListings("Edit", in.ID)
		return nil
	}).OnError(logFailure[editInput](logger, "Edit"))

	s.del = NewMutation(func(ctx context.Context, id string) (models.MessageResponse, error) {
		if strings.TrimSpace(id) == "" {
			return models.MessageResponse{}, ErrEmptyServiceID
		}
		return s.adapter.DeleteService(ctx, id)
	}).OnSuccess(func(_ context.Context, id string, _ models.MessageResponse) error {
		s.invalidateListings("Delete", id)
		return nil
	}).OnError(logFailure[string](logger, "Delete"))

	return s
}

// logFailure returns an error hook that logs a failed mutation.
func logFailure[In any](log *logger.Logger, op string) func(context.Context, In, error) {
	return func(_ context.Context, _ In, err error) {
		log.Warn().Err(err).Str("func", "clientCatalogService."+op).Msg("mutation failed")
	}
}

func (s *clientCatalogService) invalidateListings(op, id string) {
	s.cache.InvalidateResource(resourceServices)
	s.cache.InvalidateResource(resourceSearch)
	s.logger.Debug().Str("func", "clientCatalogService."+op).Str("service_id", id).Msg("service listings invalidated")
}

func (s *clientCatalogService) List(ctx context.Context, page, limit int) (models.ServicesPage, error) {
	return s.list.Load(ctx, models.ListServicesParams{Page: page, Limit: limit})
}

func (s *clientCatalogService) RefetchWithParams(ctx context.Context, page, limit int) (models.ServicesPage, error) {
	return s.list.RefetchWithParams(ctx, models.ListServicesParams{Page: page, Limit: limit})
}

// Feed pulls every page fresh from the backend so "load more" never shows a
// stale page.
func (s *clientCatalogService) Feed(limit int) (*pagination.Accumulator[models.Service], error) {
	return pagination.New(limit,
		func(svc models.Service) string { return svc.ID },
		func(ctx context.Context, page, limit int) ([]models.Service, int, error) {
			resp, err := s.RefetchWithParams(ctx, page, limit)
			if err != nil {
				return nil, 0, err
			}
			return resp.Services, resp.ServicesCount, nil
		},
	)
}

func (s *clientCatalogService) Search(ctx context.Context, term string) ([]models.Service, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Service{}, nil
	}
	return s.search.Load(ctx, term)
}

func (s *clientCatalogService) Add(ctx context.Context, payload models.ServicePayload) (models.ServiceResponse, error) {
	return s.add.Mutate(ctx, payload)
}

func (s *clientCatalogService) Edit(ctx context.Context, id string, payload models.ServicePayload) (models.ServiceResponse, error) {
	return s.edit.Mutate(ctx, editInput{ID: id, Payload: payload})
}

func (s *clientCatalogService) Delete(ctx context.Context, id string) (models.MessageResponse, error) {
	return s.del.Mutate(ctx, id)
}

// SelectService navigates even when the selection could not be saved; the
// detail screen then falls back to the in-memory service.
func (s *clientCatalogService) SelectService(ctx context.Context, svc models.Service) error {
	err := s.selection.SaveSelectedService(ctx, svc)
	if err != nil {
		s.logger.Err(err).Str("func", "clientCatalogService.SelectService").Msg("failed to persist selected service")
		err = fmt.Errorf("error saving selected service: %w", err)
	}

	s.navigator.Navigate(navigation.ServicePath(svc.Name))
	return err
}

func (s *clientCatalogService) SelectedService(ctx context.Context) (models.Service, error) {
	svc, err := s.selection.GetSelectedService(ctx)
	if errors.Is(err, store.ErrNoSelectedService) {
		return models.Service{}, ErrNoSelectedService
	}
	return svc, err
}

func (s *clientCatalogService) SuggestCategories(term string) []models.Category {
	return models.SuggestCategories(term)
}

func (s *clientCatalogService) ListState() State[models.ServicesPage] {
	return s.list.State()
}

func (s *clientCatalogService) SearchState() State[[]models.Service] {
	return s.search.State()
}

func (s *clientCatalogService) AddState() State[models.ServiceResponse] {
	return s.add.State()
}

func (s *clientCatalogService) EditState() State[models.ServiceResponse] {
	return s.edit.State()
}

func (s *clientCatalogService) DeleteState() State[models.MessageResponse] {
	return s.del.State()
}
