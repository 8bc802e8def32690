package models

import "time"

// Sender tells who wrote a chat message.
type Sender string

const (
	SenderUser    Sender = "user"
	SenderContact Sender = "contact"
)

// DeliveryStatus tracks an optimistically added message.
type DeliveryStatus int

const (
	DeliveryPending DeliveryStatus = iota
	DeliverySent
	DeliveryFailed
)

// ChatMessage is a single message in a conversation.
type ChatMessage struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Sender    Sender         `json:"sender"`
	Timestamp time.Time      `json:"timestamp"`
	IsRead    bool           `json:"isRead"`
	Status    DeliveryStatus `json:"-"`
}

// ChatContact is the other party of a conversation.
type ChatContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}
