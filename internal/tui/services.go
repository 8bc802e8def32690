// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/loopp-client/internal/navigation"
	"github.com/MKhiriev/loopp-client/internal/pagination"
	"github.com/MKhiriev/loopp-client/internal/service"
	"github.com/MKhiriev/loopp-client/models"
)

// ServicesModel is the dashboard: a "load more" listing of the catalogue
// with search, selection and, for project managers, deletion.
type ServicesModel struct {
	ctx       context.Context
	auth      service.ClientAuthService
	catalog   service.ClientCatalogService
	navigator navigation.Navigator
	feed      *pagination.Accumulator[models.Service]

	user models.User
	idx  int

	searching     bool
	searchInput   textinput.Model
	searchTerm    string
	results       []models.Service
	searchLoading bool

	spinner spinner.Model
	status  string
	errMsg  string

	showConfirm   bool
	confirm       confirmModel
	pendingDelete models.Service
}

func NewServicesModel(
	ctx context.Context,
	auth service.ClientAuthService,
	catalog service.ClientCatalogService,
	navigator navigation.Navigator,
	feed *pagination.Accumulator[models.Service],
) *ServicesModel {
	input := textinput.New()
	input.Placeholder = strings.Join(navigation.PopularSearches, ", ")
	input.Width = 50

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &ServicesModel{
		ctx:         ctx,
		auth:        auth,
		catalog:     catalog,
		navigator:   navigator,
		feed:        feed,
		searchInput: input,
		spinner:     s,
	}
}

// Init loads the signed-in user and, the first time, the first page.
func (m *ServicesModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.cmdCurrentUser()}
	if m.feed.State() == pagination.Idle {
		cmds = append(cmds, m.spinner.Tick, m.cmdLoad())
	}
	return tea.Batch(cmds...)
}

func (m *ServicesModel) isManager() bool {
	return m.user.Role == models.RoleProjectManager
}

// visible is what the list shows: search results while a search is active,
// the accumulated feed otherwise.
func (m *ServicesModel) visible() []models.Service {
	if m.searchTerm != "" {
		return m.results
	}
	return m.feed.Items()
}

func (m *ServicesModel) current() (models.Service, bool) {
	items := m.visible()
	if m.idx < 0 || m.idx >= len(items) {
		return models.Service{}, false
	}
	return items[m.idx], true
}

// canLoadMore reports whether the load-more action is offered.
func (m *ServicesModel) canLoadMore() bool {
	return m.searchTerm == "" && m.feed.State() != pagination.Idle && !m.feed.Exhausted()
}

func (m *ServicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case currentUserMsg:
		if cmd, ok := m.signOutIfRejected(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.user = msg.user.User
		return m, nil
	case feedLoadedMsg:
		if cmd, ok := m.signOutIfRejected(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil && !errors.Is(msg.err, pagination.ErrLoadInProgress) {
			m.errMsg = errorText(msg.err)
		}
		m.clampCursor()
		return m, nil
	case searchDoneMsg:
		if msg.term != m.searchTerm {
			return m, nil
		}
		m.searchLoading = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.results = msg.results
		m.idx = 0
		return m, nil
	case selectDoneMsg:
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
		}
		return m, nil
	case deleteDoneMsg:
		if cmd, ok := m.signOutIfRejected(msg.err); ok {
			return m, cmd
		}
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.status = msg.message
		if m.status == "" {
			m.status = "Service deleted"
		}
		m.removeResult(msg.id)
		m.feed.Reset()
		return m, tea.Batch(m.cmdLoad(), cmdClearStatus())
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Could not copy to clipboard"
			return m, nil
		}
		m.status = "Copied " + msg.text
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		if m.feed.Loading() || m.searchLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ServicesModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.errMsg != "" {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.errMsg = ""
		}
		return m, nil
	}

	if m.showConfirm {
		switch {
		case key.Matches(msg, keys.yes):
			m.showConfirm = false
			return m, m.cmdDelete(m.pendingDelete.ID)
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.showConfirm = false
			m.pendingDelete = models.Service{}
		}
		return m, nil
	}

	if m.searching {
		switch {
		case key.Matches(msg, keys.esc):
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		case key.Matches(msg, keys.enter):
			m.searching = false
			m.searchInput.Blur()
			term := strings.TrimSpace(m.searchInput.Value())
			if term == "" {
				m.clearSearch()
				return m, nil
			}
			m.searchTerm = term
			m.results = nil
			m.searchLoading = true
			m.idx = 0
			return m, tea.Batch(m.spinner.Tick, m.cmdSearch(term))
		}

		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.visible())-1 {
			m.idx++
		}
	case key.Matches(msg, keys.loadMore):
		if !m.canLoadMore() || m.feed.Loading() {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, m.cmdLoadMore())
	case key.Matches(msg, keys.refresh):
		if m.feed.Loading() {
			return m, nil
		}
		m.feed.Reset()
		m.idx = 0
		return m, tea.Batch(m.spinner.Tick, m.cmdLoad())
	case key.Matches(msg, keys.search):
		m.searching = true
		m.searchInput.SetValue(m.searchTerm)
		return m, m.searchInput.Focus()
	case key.Matches(msg, keys.esc):
		if m.searchTerm != "" {
			m.clearSearch()
		}
	case key.Matches(msg, keys.enter):
		svc, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, m.cmdSelect(svc)
	case key.Matches(msg, keys.copy):
		svc, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, cmdCopyToClipboard(navigation.ServicePath(svc.Name))
	case key.Matches(msg, keys.delete):
		svc, ok := m.current()
		if !ok || !m.isManager() {
			return m, nil
		}
		m.showConfirm = true
		m.confirm.message = svc.Name
		m.pendingDelete = svc
	case key.Matches(msg, keys.chat):
		return m, navigate(pageChat)
	case key.Matches(msg, keys.signOut):
		m.resetForSignOut()
		return m, m.cmdSignOut()
	}

	return m, nil
}

func (m *ServicesModel) clearSearch() {
	m.searchTerm = ""
	m.results = nil
	m.searchLoading = false
	m.searchInput.SetValue("")
	m.idx = 0
}

func (m *ServicesModel) clampCursor() {
	if n := len(m.visible()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *ServicesModel) removeResult(id string) {
	kept := m.results[:0]
	for _, svc := range m.results {
		if svc.ID != id {
			kept = append(kept, svc)
		}
	}
	m.results = kept
	m.clampCursor()
}

// signOutIfRejected drops the session when the backend no longer accepts
// the stored credential.
func (m *ServicesModel) signOutIfRejected(err error) (tea.Cmd, bool) {
	if !service.IsUnauthorized(err) {
		return nil, false
	}
	m.resetForSignOut()
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return signedOutMsg{err: auth.SignOut(ctx), expired: true}
	}, true
}

func (m *ServicesModel) resetForSignOut() {
	m.feed.Reset()
	m.clearSearch()
	m.user = models.User{}
	m.status = ""
	m.errMsg = ""
}

func (m *ServicesModel) View() string {
	var b strings.Builder

	if m.user.Email != "" {
		b.WriteString(fmt.Sprintf("%s · %s\n\n", m.user.FullName(), m.user.Role))
	}

	if m.searching {
		b.WriteString("Search: ")
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	} else if m.searchTerm != "" {
		b.WriteString(fmt.Sprintf("Results for %q\n\n", m.searchTerm))
	}

	items := m.visible()
	switch {
	case m.searchLoading:
		b.WriteString(m.spinner.View() + " Searching...\n")
	case m.feed.State() == pagination.Idle && m.searchTerm == "" && m.feed.Loading():
		b.WriteString(m.spinner.View() + " Loading services...\n")
	case m.feed.State() == pagination.Idle && m.searchTerm == "":
		b.WriteString("Services are not loaded, press r to retry\n")
	case len(items) == 0:
		b.WriteString("No services found\n")
	default:
		for i, svc := range items {
			cursor := "  "
			line := fmt.Sprintf("%s  [%s]%s", fitText(svc.Name, 40), svc.Category, badges(svc))
			if i == m.idx {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
	}

	if m.searchTerm == "" && m.feed.Total() > 0 {
		b.WriteString(fmt.Sprintf("\n%d of %d services", len(items), m.feed.Total()))
		if m.feed.State() == pagination.LoadingMore {
			b.WriteString("  " + m.spinner.View() + " loading more...")
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	if m.showConfirm {
		b.WriteString("\n" + m.confirm.View() + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorOverlayModel{message: m.errMsg}.View() + "\n")
	}

	return renderPage("SERVICES", strings.TrimRight(b.String(), "\n"), m.help())
}

func (m *ServicesModel) help() string {
	if m.searching {
		return "enter: search │ esc: cancel"
	}

	parts := []string{"↑/↓: move", "enter: open"}
	if m.canLoadMore() && !m.feed.Loading() {
		parts = append(parts, "m: load more")
	}
	parts = append(parts, "/: search")
	if m.searchTerm != "" {
		parts = append(parts, "esc: clear search")
	}
	parts = append(parts, "c: copy link")
	if m.isManager() {
		parts = append(parts, "d: delete")
	}
	parts = append(parts, "r: refresh", "t: chat", "o: sign out")
	return strings.Join(parts, " │ ")
}

func badges(svc models.Service) string {
	var out string
	if svc.Verified {
		out += " " + badgeStyle.Render("✔ verified")
	}
	if svc.Pro {
		out += " " + badgeStyle.Render("★ pro")
	}
	return out
}

func (m *ServicesModel) cmdCurrentUser() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		user, err := auth.CurrentUser(ctx)
		return currentUserMsg{user: user, err: err}
	}
}

func (m *ServicesModel) cmdLoad() tea.Cmd {
	ctx, feed := m.ctx, m.feed
	return func() tea.Msg {
		return feedLoadedMsg{err: feed.Load(ctx)}
	}
}

func (m *ServicesModel) cmdLoadMore() tea.Cmd {
	ctx, feed := m.ctx, m.feed
	return func() tea.Msg {
		more, err := feed.LoadMore(ctx)
		return feedLoadedMsg{more: more, err: err}
	}
}

func (m *ServicesModel) cmdSearch(term string) tea.Cmd {
	ctx, catalog, nav := m.ctx, m.catalog, m.navigator
	return func() tea.Msg {
		nav.Navigate(navigation.SearchPath(term))
		results, err := catalog.Search(ctx, term)
		return searchDoneMsg{term: term, results: results, err: err}
	}
}

func (m *ServicesModel) cmdSelect(svc models.Service) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		return selectDoneMsg{err: catalog.SelectService(ctx, svc)}
	}
}

func (m *ServicesModel) cmdDelete(id string) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		resp, err := catalog.Delete(ctx, id)
		return deleteDoneMsg{id: id, message: resp.Message, err: err}
	}
}

func (m *ServicesModel) cmdSignOut() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return signedOutMsg{err: auth.SignOut(ctx)}
	}
}
