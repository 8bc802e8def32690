// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/loopp-client/internal/utils"
	"github.com/MKhiriev/loopp-client/models"
)

// ErrEmptyMessage is returned by [Conversation.Send] for blank text.
var ErrEmptyMessage = errors.New("message is empty")

// Conversation is safe for concurrent use.
type Conversation struct {
	contact models.ChatContact
	sender  MessageSender
	ids     utils.IDGenerator
	now     func() time.Time

	mu       sync.Mutex
	messages []models.ChatMessage
	waiting  int
}

func NewConversation(contact models.ChatContact, sender MessageSender, ids utils.IDGenerator) *Conversation {
	return &Conversation{
		contact: contact,
		sender:  sender,
		ids:     ids,
		now:     time.Now,
	}
}

func (c *Conversation) Contact() models.ChatContact {
	return c.contact
}

// Send appends the user's message as pending, delivers it and appends the
// reply. On failure the message stays in the conversation marked failed.
func (c *Conversation) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	local := models.ChatMessage{
		ID:        c.ids.Generate(),
		Text:      text,
		Sender:    models.SenderUser,
		Timestamp: c.now(),
		IsRead:    true,
		Status:    models.DeliveryPending,
	}

	c.mu.Lock()
	c.messages = append(c.messages, local)
	c.waiting++
	c.mu.Unlock()

	reply, err := c.sender.Send(ctx, c.contact.ID, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.waiting--

	status := models.DeliverySent
	if err != nil {
		status = models.DeliveryFailed
	}
	c.setStatusLocked(local.ID, status)

	if err != nil {
		return models.ChatMessage{}, err
	}

	if reply.ID == "" {
		reply.ID = c.ids.Generate()
	}
	reply.Sender = models.SenderContact
	reply.Status = models.DeliverySent
	c.messages = append(c.messages, reply)

	return reply, nil
}

func (c *Conversation) setStatusLocked(id string, status models.DeliveryStatus) {
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i].Status = status
			return
		}
	}
}

// Messages returns a copy of the conversation, oldest first.
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatMessage(nil), c.messages...)
}

// Typing reports whether a reply is awaited.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiting > 0
}

// Delete removes message id and reports whether it existed.
func (c *Conversation) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, m := range c.messages {
		if m.ID == id {
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every message.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}
