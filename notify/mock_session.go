/* mock_session.go
 * Contains mock implementation of WebhookSession for testing
 */

package notify

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// MockWebhookSession implements WebhookSession for testing purposes
type MockWebhookSession struct {
	mu sync.Mutex
	// Sent stores every webhook payload posted during tests
	Sent []MockWebhookMessage
	// ErrorToReturn allows tests to simulate errors
	ErrorToReturn error
}

// MockWebhookMessage is one payload posted to a webhook
type MockWebhookMessage struct {
	WebhookID string
	Token     string
	Params    *discordgo.WebhookParams
}

// NewMockWebhookSession creates a new MockWebhookSession for testing
func NewMockWebhookSession() *MockWebhookSession {
	return &MockWebhookSession{
		Sent: make([]MockWebhookMessage, 0),
	}
}

// WebhookExecute implements WebhookSession.WebhookExecute
func (m *MockWebhookSession) WebhookExecute(webhookID string, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.Sent = append(m.Sent, MockWebhookMessage{
		WebhookID: webhookID,
		Token:     token,
		Params:    data,
	})

	return &discordgo.Message{ID: "mock_message_id", Content: data.Content}, nil
}

// GetLastMessage returns the last payload posted, or an empty MockWebhookMessage if none
func (m *MockWebhookSession) GetLastMessage() MockWebhookMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return MockWebhookMessage{}
	}
	return m.Sent[len(m.Sent)-1]
}
