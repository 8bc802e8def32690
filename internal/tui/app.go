package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/loopp-client/internal/navigation"
	"github.com/MKhiriev/loopp-client/models"
)

// Page names.
const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
	pageServices = "services"
	pageDetail   = "detail"
	pageChat     = "chat"
)

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages and routes reported by the navigator
// 4) delegates all other messages to the active page
type RootModel struct {
	pages       map[string]tea.Model
	current     tea.Model
	currentName string

	quitByUser bool
	buildInfo  models.AppBuildInfo

	showBuildInfo bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:       pages,
		current:     pages[startPage],
		currentName: startPage,
		buildInfo:   buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkeys for every page.
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case "v":
			if r.currentName == pageMenu {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch nav := msg.(type) {
	case NavigateTo:
		return r.switchTo(nav.Page, nav.Payload)
	case routeChangedMsg:
		page := pageForRoute(nav.route)
		if page != "" && page != r.currentName {
			return r.switchTo(page, nil)
		}
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	r.pages[r.currentName] = updated
	return r, cmd
}

func (r RootModel) switchTo(page string, payload any) (tea.Model, tea.Cmd) {
	next, exists := r.pages[page]
	if !exists {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = next
	r.currentName = page

	if payload != nil {
		return r, func() tea.Msg { return payload }
	}
	return r, r.current.Init()
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(r.buildInfo))
	}
	if r.current == nil {
		return renderPage("LOOPP", "", "")
	}
	return appStyle.Render(r.current.View())
}

// Page returns the name of the active page.
func (r RootModel) Page() string {
	return r.currentName
}

// pageForRoute maps a navigator route onto the page that renders it. An
// unknown route maps to "".
func pageForRoute(route string) string {
	switch route {
	case navigation.RouteLanding:
		return pageMenu
	case navigation.RouteManagerHome, navigation.RouteOwnerHome, navigation.RouteEngineerHome:
		return pageServices
	}

	if _, ok := navigation.SearchTerm(route); ok {
		return pageServices
	}
	if strings.HasPrefix(route, navigation.ServicePath("")) {
		return pageDetail
	}
	return ""
}
