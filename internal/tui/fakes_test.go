package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/loopp-client/internal/pagination"
	"github.com/MKhiriev/loopp-client/internal/service"
	"github.com/MKhiriev/loopp-client/models"
)

type fakeAuth struct {
	service.ClientAuthService

	user     models.User
	loginErr error
	signUps  []models.SignUpRequest
	signOuts int
	authed   bool
}

func (f *fakeAuth) Login(_ context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	if f.loginErr != nil {
		return models.AuthResponse{}, f.loginErr
	}
	return models.AuthResponse{Token: "t", User: models.User{Email: req.Email, Role: "astronaut"}}, nil
}

func (f *fakeAuth) SignUp(_ context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	f.signUps = append(f.signUps, req)
	return models.AuthResponse{}, f.loginErr
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOuts++
	return nil
}

func (f *fakeAuth) CurrentUser(context.Context) (service.CurrentUser, error) {
	return service.CurrentUser{User: f.user, Authenticated: f.user.ID != ""}, nil
}

func (f *fakeAuth) Authenticated(context.Context) bool {
	return f.authed
}

type fakeCatalog struct {
	service.ClientCatalogService

	mu        sync.Mutex
	searched  []string
	results   []models.Service
	deleted   []string
	selected  []models.Service
	selection models.Service
	selectErr error
}

func (f *fakeCatalog) Search(_ context.Context, term string) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, term)
	return f.results, nil
}

func (f *fakeCatalog) Delete(_ context.Context, id string) (models.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return models.MessageResponse{Message: "Service deleted successfully"}, nil
}

func (f *fakeCatalog) SelectService(_ context.Context, svc models.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = append(f.selected, svc)
	return nil
}

func (f *fakeCatalog) SelectedService(context.Context) (models.Service, error) {
	return f.selection, f.selectErr
}

type fakeUsers struct {
	service.ClientUsersService

	users []models.User
	roles []models.Role
}

func (f *fakeUsers) ByRole(_ context.Context, role models.Role) ([]models.User, error) {
	f.roles = append(f.roles, role)
	return f.users, nil
}

// pageFetcher serves services from a fixed catalogue of total items.
// Pages listed in fail return err instead.
type pageFetcher struct {
	mu    sync.Mutex
	all   []models.Service
	fail  map[int]error
	gate  chan struct{}
	calls []int
}

func (p *pageFetcher) fetch(ctx context.Context, page, limit int) ([]models.Service, int, error) {
	p.mu.Lock()
	p.calls = append(p.calls, page)
	gate := p.gate
	err := p.fail[page]
	p.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
	if err != nil {
		return nil, 0, err
	}

	start := (page - 1) * limit
	if start > len(p.all) {
		start = len(p.all)
	}
	end := min(start+limit, len(p.all))
	return p.all[start:end], len(p.all), nil
}

func newFeed(p *pageFetcher, limit int) *pagination.Accumulator[models.Service] {
	feed, err := pagination.New(limit, func(s models.Service) string { return s.ID }, p.fetch)
	if err != nil {
		panic(err)
	}
	return feed
}

// runCmd executes cmd and returns every message it produced, flattening
// batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// firstOf returns the first message of type T.
func firstOf[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func catalogue(n int) []models.Service {
	out := make([]models.Service, n)
	for i := range out {
		out[i] = models.Service{
			ID:       string(rune('a' + i)),
			Name:     "Service " + string(rune('A'+i)),
			Category: "AI Agents",
		}
	}
	return out
}
