// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/loopp-client/internal/service"
	"github.com/MKhiriev/loopp-client/models"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two text inputs
// (email and password) and dispatches an async login command on form submission.
// On success the auth service navigates to the user's dashboard and [RootModel]
// switches pages; this model only renders failures.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	status     string
}

// NewLoginModel creates a [LoginModel] with pre-configured email and password inputs.
// The email field receives focus immediately; the password field uses masked echo.
func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *LoginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "you@company.com"
	emailInput.CharLimit = 254
	emailInput.Width = 40
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{
		ctx:    ctx,
		auth:   auth,
		inputs: []textinput.Model{emailInput, passwordInput},
	}
}

// Init implements [tea.Model]. It clears the form and starts the cursor blink.
func (m *LoginModel) Init() tea.Cmd {
	m.reset()
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - authResultMsg: clears the submitting state and renders a failure.
//   - esc: navigates back to the menu.
//   - tab / shift+tab: moves focus between inputs.
//   - enter: dispatches the async login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		m.submitting = false
		switch {
		case result.err != nil:
			m.errMsg = errorText(result.err)
		default:
			// The auth service did not navigate, so the role has no dashboard.
			m.status = "Signed in as " + result.resp.User.Email + ", but role " +
				string(result.resp.User.Role) + " has no dashboard"
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.reset()
			return m, navigate(pageMenu)
		case key.Matches(keyMsg, keys.tab):
			m.focus = focusNext(m.inputs, m.focus)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.focus = focusPrev(m.inputs, m.focus)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			m.errMsg = ""
			m.status = ""
			m.submitting = true
			return m, m.cmdLogin(models.LoginRequest{
				Email:    strings.TrimSpace(m.inputs[0].Value()),
				Password: m.inputs[1].Value(),
			})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	b.WriteString("Email     │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Logging in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("LOG IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(req models.LoginRequest) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		resp, err := auth.Login(ctx, req)
		return authResultMsg{resp: resp, err: err}
	}
}

func (m *LoginModel) reset() {
	m.submitting = false
	m.errMsg = ""
	m.status = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.inputs[m.focus].Blur()
	m.focus = 0
	m.inputs[0].Focus()
}

func focusNext(inputs []textinput.Model, focus int) int {
	inputs[focus].Blur()
	focus = (focus + 1) % len(inputs)
	inputs[focus].Focus()
	return focus
}

func focusPrev(inputs []textinput.Model, focus int) int {
	inputs[focus].Blur()
	focus = (focus - 1 + len(inputs)) % len(inputs)
	inputs[focus].Focus()
	return focus
}
