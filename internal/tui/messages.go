package tui

import (
	"github.com/MKhiriev/loopp-client/internal/service"
	"github.com/MKhiriev/loopp-client/models"
)

// NavigateTo switches the active page. Payload, when set, is delivered to
// the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload any
}

// routeChangedMsg carries a route the services navigated to.
type routeChangedMsg struct {
	route string
}

type authResultMsg struct {
	resp models.AuthResponse
	err  error
}

type currentUserMsg struct {
	user service.CurrentUser
	err  error
}

type feedLoadedMsg struct {
	more bool
	err  error
}

type searchDoneMsg struct {
	term    string
	results []models.Service
	err     error
}

type selectDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	id      string
	message string
	err     error
}

type selectedServiceMsg struct {
	svc models.Service
	err error
}

type contactsLoadedMsg struct {
	contacts []models.ChatContact
	err      error
}

type chatReplyMsg struct {
	reply models.ChatMessage
	err   error
}

type signedOutMsg struct {
	err     error
	expired bool
}

type copiedMsg struct {
	text string
	err  error
}

type clearStatusMsg struct{}
