/* interest_emails.go
 * Contains the methods for interacting with the interest_emails collection
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MergeInterestEmail records that an address wants updates. Submitting the same address again only refreshes
// updatedAt.
func (s *Store) MergeInterestEmail(ctx context.Context, email string) error {
	key := NormalizeEmail(email)
	if key == "" {
		return ErrEmptyKey
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	filter := bson.M{"_id": key}
	update := mergeUpdate(bson.M{"email": key}, s.clock())

	_, err := s.Collections.InterestEmails.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to merge interest email: %w", err)
	}
	return nil
}
