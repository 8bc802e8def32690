package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/loopp-client/internal/navigation"
	"github.com/MKhiriev/loopp-client/internal/service"
	"github.com/MKhiriev/loopp-client/models"
)

// DetailModel shows the last selected service. It reads the selection back
// from the catalogue service, so it also works after a restart.
type DetailModel struct {
	ctx     context.Context
	catalog service.ClientCatalogService

	svc     models.Service
	loading bool
	status  string
	errMsg  string
}

func NewDetailModel(ctx context.Context, catalog service.ClientCatalogService) *DetailModel {
	return &DetailModel{ctx: ctx, catalog: catalog}
}

func (m *DetailModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	m.status = ""

	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		svc, err := catalog.SelectedService(ctx)
		return selectedServiceMsg{svc: svc, err: err}
	}
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case selectedServiceMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.svc = msg.svc
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Could not copy to clipboard"
			return m, nil
		}
		m.status = "Copied!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(pageServices)
		case key.Matches(msg, keys.copy):
			if m.svc.Name == "" {
				return m, nil
			}
			return m, cmdCopyToClipboard(navigation.ServicePath(m.svc.Name))
		case key.Matches(msg, keys.chat):
			return m, navigate(pageChat)
		}
	}

	return m, nil
}

func (m *DetailModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Loading...")
	case m.errMsg != "":
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	default:
		b.WriteString(selectedStyle.Render(m.svc.Name))
		b.WriteString(badges(m.svc))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Category:  %s\n", m.svc.Category))
		if m.svc.Image != "" {
			b.WriteString(fmt.Sprintf("Image:     %s\n", m.svc.Image))
		}
		b.WriteString(fmt.Sprintf("Link:      %s\n", navigation.ServicePath(m.svc.Name)))
		b.WriteString("\n")
		b.WriteString(m.svc.Description)
	}

	if m.status != "" {
		b.WriteString("\n\n" + statusStyle.Render(m.status))
	}

	return renderPage("SERVICE", b.String(), "c: copy link │ t: chat │ esc: back")
}
