package mocks

import (
	"sync"

	"github.com/CamiloBytes/reportesvc/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error

	mu   sync.Mutex
	sent []SentSMS
}

// SentSMS records one delivered message for assertions.
type SentSMS struct {
	To      string
	Message string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS sends an SMS message
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: record and succeed
	m.mu.Lock()
	m.sent = append(m.sent, SentSMS{To: to, Message: message})
	m.mu.Unlock()
	return nil
}

// Sent returns the messages delivered through the default behavior.
func (m *MockNotificationService) Sent() []SentSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentSMS, len(m.sent))
	copy(out, m.sent)
	return out
}

var _ domain.NotificationService = (*MockNotificationService)(nil)
