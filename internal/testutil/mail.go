package testutil

import (
	"context"
	"sync"

	"klarfix/internal/email"
)

// MailRecorder is an email.Provider that keeps every message in memory.
type MailRecorder struct {
	mu   sync.Mutex
	sent []email.Email
	Err  error
}

func NewMailRecorder() *MailRecorder {
	return &MailRecorder{}
}

func (m *MailRecorder) Send(ctx context.Context, msg *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, *msg)
	return nil
}

func (m *MailRecorder) Validate() error { return nil }
func (m *MailRecorder) Close() error    { return nil }

// Sent returns a copy of the recorded messages.
func (m *MailRecorder) Sent() []email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]email.Email, len(m.sent))
	copy(out, m.sent)
	return out
}
