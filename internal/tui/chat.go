package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/loopp-client/internal/chat"
	"github.com/MKhiriev/loopp-client/internal/service"
	"github.com/MKhiriev/loopp-client/models"
)

// ConversationFactory opens a conversation with contact.
type ConversationFactory func(contact models.ChatContact) *chat.Conversation

// ChatModel lists the engineers to talk to and runs one conversation at a
// time. Conversations are kept per contact while the program runs.
type ChatModel struct {
	ctx   context.Context
	users service.ClientUsersService
	open  ConversationFactory

	contacts []models.ChatContact
	filter   textinput.Model
	idx      int
	loading  bool

	conversations map[string]*chat.Conversation
	active        *chat.Conversation
	input         textinput.Model

	errMsg string
}

func NewChatModel(ctx context.Context, users service.ClientUsersService, open ConversationFactory) *ChatModel {
	filter := textinput.New()
	filter.Placeholder = "filter by name or email"
	filter.Width = 40
	filter.Focus()

	input := textinput.New()
	input.Placeholder = "type a message"
	input.CharLimit = 1000
	input.Width = 60

	return &ChatModel{
		ctx:           ctx,
		users:         users,
		open:          open,
		filter:        filter,
		input:         input,
		conversations: make(map[string]*chat.Conversation),
	}
}

func (m *ChatModel) Init() tea.Cmd {
	if m.active != nil {
		return m.input.Focus()
	}

	m.loading = true
	ctx, users := m.ctx, m.users
	return tea.Batch(m.filter.Focus(), func() tea.Msg {
		list, err := users.ByRole(ctx, models.RoleProjectEngineer)
		return contactsLoadedMsg{contacts: chat.ContactsFromUsers(list), err: err}
	})
}

func (m *ChatModel) visibleContacts() []models.ChatContact {
	return chat.FilterContacts(m.contacts, m.filter.Value())
}

func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contactsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.contacts = msg.contacts
		m.idx = 0
		return m, nil
	case chatReplyMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.errMsg = "Message not delivered"
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Could not copy to clipboard"
		}
		return m, nil
	case tea.KeyMsg:
		if m.active != nil {
			return m.updateConversation(msg)
		}
		return m.updateContacts(msg)
	}

	var cmd tea.Cmd
	if m.active != nil {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.filter, cmd = m.filter.Update(msg)
	}
	return m, cmd
}

func (m *ChatModel) updateContacts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.errMsg = ""
		return m, navigate(pageServices)
	case msg.String() == "up":
		if m.idx > 0 {
			m.idx--
		}
		return m, nil
	case msg.String() == "down":
		if m.idx < len(m.visibleContacts())-1 {
			m.idx++
		}
		return m, nil
	case key.Matches(msg, keys.enter):
		contacts := m.visibleContacts()
		if m.idx >= len(contacts) {
			return m, nil
		}
		m.openConversation(contacts[m.idx])
		m.filter.Blur()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.idx >= len(m.visibleContacts()) {
		m.idx = 0
	}
	return m, cmd
}

func (m *ChatModel) updateConversation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.active = nil
		m.errMsg = ""
		m.input.Blur()
		return m, m.filter.Focus()
	case msg.String() == "ctrl+l":
		m.active.Clear()
		return m, nil
	case msg.String() == "ctrl+y":
		msgs := m.active.Messages()
		if len(msgs) == 0 {
			return m, nil
		}
		return m, cmdCopyToClipboard(msgs[len(msgs)-1].Text)
	case key.Matches(msg, keys.enter):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.errMsg = ""
		return m, m.cmdSend(m.active, text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ChatModel) openConversation(contact models.ChatContact) {
	conv, ok := m.conversations[contact.ID]
	if !ok {
		conv = m.open(contact)
		m.conversations[contact.ID] = conv
	}
	m.active = conv
}

func (m *ChatModel) cmdSend(conv *chat.Conversation, text string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		reply, err := conv.Send(ctx, text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m *ChatModel) View() string {
	if m.active != nil {
		return m.viewConversation()
	}

	var b strings.Builder
	b.WriteString("Search: ")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	contacts := m.visibleContacts()
	switch {
	case m.loading:
		b.WriteString("Loading engineers...\n")
	case len(contacts) == 0:
		b.WriteString("No engineers found\n")
	default:
		for i, c := range contacts {
			cursor := "  "
			line := fmt.Sprintf("%s <%s>", c.Name, c.Email)
			if i == m.idx {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	}

	return renderPage("CHAT", strings.TrimRight(b.String(), "\n"), "↑/↓: move │ enter: open │ esc: back")
}

func (m *ChatModel) viewConversation() string {
	var b strings.Builder

	msgs := m.active.Messages()
	if len(msgs) == 0 {
		b.WriteString(helpStyle.Render("No messages yet") + "\n")
	}
	for _, msg := range msgs {
		who := m.active.Contact().Name
		if msg.Sender == models.SenderUser {
			who = "You"
		}
		line := fmt.Sprintf("[%s] %s: %s", msg.Timestamp.Format("15:04"), who, msg.Text)
		switch msg.Status {
		case models.DeliveryPending:
			line += helpStyle.Render(" (sending)")
		case models.DeliveryFailed:
			line += errorStyle.Render(" (failed)")
		}
		b.WriteString(line + "\n")
	}

	if m.active.Typing() {
		b.WriteString(helpStyle.Render(m.active.Contact().Name+" is typing...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: "+m.errMsg) + "\n")
	}

	b.WriteString("\n> ")
	b.WriteString(m.input.View())

	return renderPage("CHAT · "+strings.ToUpper(m.active.Contact().Name), b.String(),
		"enter: send │ ctrl+y: copy last │ ctrl+l: clear │ esc: contacts")
}
