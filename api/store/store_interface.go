/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import "context"

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	MergeRegistration(ctx context.Context, registration Registration) error
	MergeInterestEmail(ctx context.Context, email string) error
	Close(ctx context.Context) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
