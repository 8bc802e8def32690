// Package chat keeps a conversation with one contact. Messages typed by the
// user show up immediately and are then confirmed or marked failed
// depending on what the [MessageSender] reports.
package chat

import (
	"context"

	"github.com/MKhiriev/loopp-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/message_sender_mock.go -package=mock

// MessageSender delivers text to a contact and returns the contact's reply.
type MessageSender interface {
	Send(ctx context.Context, contactID, text string) (models.ChatMessage, error)
}
