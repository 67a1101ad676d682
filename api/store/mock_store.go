/* mock_store.go
 * Contains an in-memory implementation of the Store interface for testing. It applies the same merge rules as the
 * MongoDB update documents so callers can assert on the resulting records.
 */

package store

import (
	"context"
	"sync"
	"time"
)

// MockStore implements Interface for testing
type MockStore struct {
	mu sync.Mutex

	// Storage for mock data, keyed by normalised email
	Registrations  map[string]Registration
	InterestEmails map[string]InterestEmail

	// Number of write calls that reached the store, successful or not
	RegistrationWrites int
	InterestWrites     int

	// Error injection for testing error paths
	MergeRegistrationError  error
	MergeInterestEmailError error
	CloseError              error

	Now func() time.Time
}

var _ Interface = (*MockStore)(nil)

// NewMockStore creates a new MockStore with empty collections
func NewMockStore() *MockStore {
	return &MockStore{
		Registrations:  make(map[string]Registration),
		InterestEmails: make(map[string]InterestEmail),
	}
}

func (m *MockStore) clock() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

// MergeRegistration mock implementation
func (m *MockStore) MergeRegistration(ctx context.Context, registration Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RegistrationWrites++
	if m.MergeRegistrationError != nil {
		return m.MergeRegistrationError
	}

	key := NormalizeEmail(registration.Email)
	if key == "" {
		return ErrEmptyKey
	}
	registration.Email = key

	now := m.clock()
	existing, ok := m.Registrations[key]
	if !ok {
		existing = Registration{CreatedAt: now}
	}
	for field, value := range registration.fields() {
		s := value.(string)
		switch field {
		case "email":
			existing.Email = s
		case "fullName":
			existing.FullName = s
		case "school":
			existing.School = s
		case "graduationYear":
			existing.GraduationYear = s
		case "travelingFrom":
			existing.TravelingFrom = s
		case "experience":
			existing.Experience = s
		}
	}
	existing.UpdatedAt = now
	m.Registrations[key] = existing
	return nil
}

// MergeInterestEmail mock implementation
func (m *MockStore) MergeInterestEmail(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InterestWrites++
	if m.MergeInterestEmailError != nil {
		return m.MergeInterestEmailError
	}

	key := NormalizeEmail(email)
	if key == "" {
		return ErrEmptyKey
	}

	now := m.clock()
	existing, ok := m.InterestEmails[key]
	if !ok {
		existing = InterestEmail{Email: key, CreatedAt: now}
	}
	existing.UpdatedAt = now
	m.InterestEmails[key] = existing
	return nil
}

// Close mock implementation
func (m *MockStore) Close(ctx context.Context) error {
	return m.CloseError
}

// GetRegistration returns a stored registration and whether it exists
func (m *MockStore) GetRegistration(email string) (Registration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Registrations[NormalizeEmail(email)]
	return r, ok
}

// GetInterestEmail returns a stored interest record and whether it exists
func (m *MockStore) GetInterestEmail(email string) (InterestEmail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.InterestEmails[NormalizeEmail(email)]
	return r, ok
}

// Counts returns the number of stored documents per collection
func (m *MockStore) Counts() (registrations int, interestEmails int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Registrations), len(m.InterestEmails)
}
