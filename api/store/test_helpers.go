/* test_helpers.go
 * Contains test helper functions for store package tests
 */

package store

import (
	"context"
	"time"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function that drops the database.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	s, err := NewStore(context.TODO(), mongoURI, "test_horizons", 2*time.Second)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if s.Client != nil {
			s.Database.Drop(context.TODO())
			s.Client.Disconnect(context.TODO())
		}
	}

	return s, cleanup, nil
}

// CreateSampleRegistration creates sample Registration data for testing.
func CreateSampleRegistration(email string) Registration {
	return Registration{
		Email:          email,
		FullName:       "Ada Lovelace",
		School:         "Stanford University",
		GraduationYear: "2027",
		TravelingFrom:  "San Francisco, CA",
		Experience:     "beginner",
	}
}
