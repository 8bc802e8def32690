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

const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldPhone
	fieldPassword
	fieldRepeat
	fieldSecret
	fieldCount
)

var registerLabels = [fieldCount]string{
	"First name",
	"Last name",
	"Email",
	"Phone",
	"Password",
	"Repeat password",
	"Manager secret",
}

// RegisterModel is the Bubble Tea model for the sign-up screen. Besides the
// text inputs it has a role row (focus index fieldCount) cycled with
// left/right. On success the auth service navigates to the new user's
// dashboard.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	inputs     []textinput.Model
	roleIdx    int
	focus      int
	submitting bool
	errMsg     string
	status     string
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	fields := make([]textinput.Model, fieldCount)
	for i := range fields {
		fields[i] = textinput.New()
		fields[i].Width = 40
	}

	fields[fieldEmail].Placeholder = "you@company.com"
	fields[fieldPhone].Placeholder = "optional"
	for _, i := range []int{fieldPassword, fieldRepeat, fieldSecret} {
		fields[i].EchoMode = textinput.EchoPassword
		fields[i].EchoCharacter = '*'
	}
	fields[fieldSecret].Placeholder = "project managers only"
	fields[fieldFirstName].Focus()

	return &RegisterModel{
		ctx:    ctx,
		auth:   auth,
		inputs: fields,
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	m.reset()
	return textinput.Blink
}

func (m *RegisterModel) role() models.Role {
	return models.Roles[m.roleIdx]
}

func (m *RegisterModel) onRoleRow() bool {
	return m.focus == fieldCount
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = errorText(result.err)
			return m, nil
		}
		m.status = "Account created, but role " + string(result.resp.User.Role) + " has no dashboard"
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.reset()
			return m, navigate(pageMenu)
		case key.Matches(keyMsg, keys.tab):
			m.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.moveFocus(-1)
			return m, nil
		case m.onRoleRow() && key.Matches(keyMsg, keys.left):
			m.roleIdx = (m.roleIdx - 1 + len(models.Roles)) % len(models.Roles)
			return m, nil
		case m.onRoleRow() && key.Matches(keyMsg, keys.right):
			m.roleIdx = (m.roleIdx + 1) % len(models.Roles)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}
			if m.inputs[fieldPassword].Value() != m.inputs[fieldRepeat].Value() {
				m.errMsg = "Passwords do not match"
				return m, nil
			}

			m.errMsg = ""
			m.status = ""
			m.submitting = true
			return m, m.cmdSignUp(m.request())
		}
	}

	if m.onRoleRow() {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) request() models.SignUpRequest {
	value := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }

	req := models.SignUpRequest{
		FirstName:   value(fieldFirstName),
		LastName:    value(fieldLastName),
		Email:       value(fieldEmail),
		PhoneNumber: value(fieldPhone),
		Password:    m.inputs[fieldPassword].Value(),
		Role:        m.role(),
	}
	if req.Role == models.RoleProjectManager {
		req.ProjectManagerSecret = m.inputs[fieldSecret].Value()
	}
	return req
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Field            │ Value\n")
	b.WriteString("─────────────────┼────────────────────────────────────\n")
	for i, label := range registerLabels {
		if i == fieldSecret && m.role() != models.RoleProjectManager {
			continue
		}
		b.WriteString(padRight(label, 16))
		b.WriteString(" │ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	roleCell := "‹ " + string(m.role()) + " ›"
	if m.onRoleRow() {
		roleCell = selectedStyle.Render(roleCell)
	}
	b.WriteString(padRight("Role", 16))
	b.WriteString(" │ ")
	b.WriteString(roleCell)
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n[Signing up...]\n")
	} else {
		b.WriteString("\n[Sign up]\n")
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

	return renderPage("SIGN UP", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ ←/→: role │ enter: submit")
}

func (m *RegisterModel) cmdSignUp(req models.SignUpRequest) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		resp, err := auth.SignUp(ctx, req)
		return authResultMsg{resp: resp, err: err}
	}
}

// moveFocus steps through the inputs and the role row, skipping the manager
// secret for other roles.
func (m *RegisterModel) moveFocus(step int) {
	if !m.onRoleRow() {
		m.inputs[m.focus].Blur()
	}

	stops := fieldCount + 1
	for {
		m.focus = (m.focus + step + stops) % stops
		if m.focus != fieldSecret || m.role() == models.RoleProjectManager {
			break
		}
	}

	if !m.onRoleRow() {
		m.inputs[m.focus].Focus()
	}
}

func (m *RegisterModel) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.roleIdx = 0
	m.focus = 0
	m.inputs[m.focus].Focus()
	m.submitting = false
	m.errMsg = ""
	m.status = ""
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
