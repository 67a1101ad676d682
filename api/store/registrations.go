/* registrations.go
 * Contains the methods for interacting with the registrations collection
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MergeRegistration stores a registration keyed by its email
// Preconditions: Receives a context and a Registration with a non-empty email
// Postconditions: Creates the registrant's document or merges the provided fields into the existing one, or returns
// an error if the operation was unsuccessful
func (s *Store) MergeRegistration(ctx context.Context, registration Registration) error {
	key := NormalizeEmail(registration.Email)
	if key == "" {
		return ErrEmptyKey
	}
	registration.Email = key

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	filter := bson.M{"_id": key}
	update := mergeUpdate(registration.fields(), s.clock())

	_, err := s.Collections.Registrations.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to merge registration: %w", err)
	}
	return nil
}
