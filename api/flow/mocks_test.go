/* mocks_test.go
 * Contains test doubles shared by the flow tests
 */

package flow

import (
	"context"
	"sync"

	"horizons-site/api/store"
)

// mockVerifier records the tokens it was asked about
type mockVerifier struct {
	mu     sync.Mutex
	Tokens []string

	Result        bool
	ErrorToReturn error
	// When set, VerifyToken blocks until the channel is closed
	Block chan struct{}
}

func newMockVerifier(result bool) *mockVerifier {
	return &mockVerifier{Result: result}
}

func (m *mockVerifier) VerifyToken(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	m.Tokens = append(m.Tokens, token)
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return m.Result, m.ErrorToReturn
}

func (m *mockVerifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Tokens)
}

type mockNotifier struct {
	mu            sync.Mutex
	Registrations []store.Registration
	Interests     []string
	ErrorToReturn error
}

func (m *mockNotifier) RegistrationReceived(ctx context.Context, registration store.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Registrations = append(m.Registrations, registration)
	return m.ErrorToReturn
}

func (m *mockNotifier) InterestReceived(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Interests = append(m.Interests, email)
	return m.ErrorToReturn
}

type transitionRecorder struct {
	mu   sync.Mutex
	seen [][2]Status
}

func (r *transitionRecorder) record(from Status, to Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, [2]Status{from, to})
}

func (r *transitionRecorder) transitions() [][2]Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][2]Status(nil), r.seen...)
}
