/* store.go
 * Contains the store struct and NewStore function. The write methods for this package are split by collection:
 * registrations and interest_emails. Each of these files contain methods for interacting with that part of the
 * database
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RegistrationsCollection  = "registrations"
	InterestEmailsCollection = "interest_emails"
)

// Collections groups the handles for every collection the site writes to
type Collections struct {
	Registrations  *mongo.Collection
	InterestEmails *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Timeout     time.Duration // per operation; zero means the caller's context decides
	Collections Collections

	now func() time.Time
}

// NewStore connects to MongoDB and returns a Store bound to the given database
// Preconditions: Receives a context bounding the connection attempt, a mongo URI, a database name and a per
// operation timeout
// Postconditions: Returns pointer to a Store whose connection has been verified with a ping, or error if it occurs
func NewStore(ctx context.Context, mongoURI string, dbName string, timeout time.Duration) (*Store, error) {
	if mongoURI == "" || dbName == "" {
		return nil, fmt.Errorf("mongo uri and database name cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, max(timeout, time.Second))
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return newStore(client, client.Database(dbName), timeout), nil
}

func newStore(client *mongo.Client, db *mongo.Database, timeout time.Duration) *Store {
	return &Store{
		Client:   client,
		Database: db,
		Timeout:  timeout,
		Collections: Collections{
			Registrations:  db.Collection(RegistrationsCollection),
			InterestEmails: db.Collection(InterestEmailsCollection),
		},
	}
}

// Close disconnects the underlying client
func (s *Store) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// opContext bounds a single database operation by the store timeout
func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(ctx, s.Timeout)
	}
	return context.WithCancel(ctx)
}
