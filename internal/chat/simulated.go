package chat

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/MKhiriev/loopp-client/internal/utils"
	"github.com/MKhiriev/loopp-client/models"
)

var cannedReplies = []string{
	"Got it! I'll work on that right away.",
	"Thanks for the update. I'll keep you posted on the progress.",
	"That sounds good. Let me review and get back to you.",
	"I understand. I'll make those changes and update you soon.",
	"Perfect! I'll implement that and test it thoroughly.",
	"Thanks for clarifying. I'll proceed with the implementation.",
}

// SimulatedSender stands in for a chat backend: every message is answered
// with a canned reply after a random delay.
type SimulatedSender struct {
	minDelay time.Duration
	maxDelay time.Duration
	ids      utils.IDGenerator
	pick     func(n int) int
	now      func() time.Time
}

// NewSimulatedSender answers after a delay between a third of maxDelay and
// maxDelay.
func NewSimulatedSender(maxDelay time.Duration, ids utils.IDGenerator) *SimulatedSender {
	if maxDelay < 0 {
		maxDelay = 0
	}

	return &SimulatedSender{
		minDelay: maxDelay / 3,
		maxDelay: maxDelay,
		ids:      ids,
		pick:     rand.IntN,
		now:      time.Now,
	}
}

func (s *SimulatedSender) Send(ctx context.Context, contactID, _ string) (models.ChatMessage, error) {
	delay := s.minDelay
	if spread := s.maxDelay - s.minDelay; spread > 0 {
		delay += time.Duration(s.pick(int(spread)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return models.ChatMessage{}, ctx.Err()
	}

	return models.ChatMessage{
		ID:        s.ids.Generate(),
		Text:      cannedReplies[s.pick(len(cannedReplies))],
		Sender:    models.SenderContact,
		Timestamp: s.now(),
		IsRead:    true,
	}, nil
}

// FilterContacts keeps the contacts whose name or email contains term,
// ignoring case. An empty term keeps everything.
func FilterContacts(contacts []models.ChatContact, term string) []models.ChatContact {
	needle := strings.ToLower(strings.TrimSpace(term))

	out := make([]models.ChatContact, 0, len(contacts))
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), needle) || strings.Contains(strings.ToLower(c.Email), needle) {
			out = append(out, c)
		}
	}
	return out
}

// ContactsFromUsers turns directory users into chat contacts.
func ContactsFromUsers(users []models.User) []models.ChatContact {
	out := make([]models.ChatContact, 0, len(users))
	for _, u := range users {
		out = append(out, models.ChatContact{
			ID:    u.ID,
			Name:  u.FullName(),
			Email: u.Email,
			Role:  u.Role,
		})
	}
	return out
}
