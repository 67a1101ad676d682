/* models.go
 * This file contain the structs and helper functions that relate to DB objects
 */

package store

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrEmptyKey is returned when a record has no usable email to key it by
var ErrEmptyKey = errors.New("email is required as document key")

// Registration is a registrant record in the registrations collection. The email doubles as the document id.
type Registration struct {
	Email          string    `bson:"email" json:"email"`
	FullName       string    `bson:"fullName,omitempty" json:"fullName"`
	School         string    `bson:"school,omitempty" json:"school"`
	GraduationYear string    `bson:"graduationYear,omitempty" json:"graduationYear"` // "2025".."2029" or "graduated"
	TravelingFrom  string    `bson:"travelingFrom,omitempty" json:"travelingFrom"`
	Experience     string    `bson:"experience,omitempty" json:"experience"` // none, beginner, intermediate, advanced
	CreatedAt      time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// InterestEmail is a record in the interest_emails collection
type InterestEmail struct {
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// NormalizeEmail turns a user supplied address into the document key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// fields returns the values a merge write should overwrite. Empty values are left out so that they do not clobber
// what an earlier submission stored.
func (r Registration) fields() bson.M {
	set := bson.M{"email": r.Email}
	optional := map[string]string{
		"fullName":       r.FullName,
		"school":         r.School,
		"graduationYear": r.GraduationYear,
		"travelingFrom":  r.TravelingFrom,
		"experience":     r.Experience,
	}
	for key, value := range optional {
		if value = strings.TrimSpace(value); value != "" {
			set[key] = value
		}
	}
	return set
}

// mergeUpdate builds the update document used for every upsert: provided fields overwrite, createdAt is only
// written when the document is first created and updatedAt is stamped by the database server.
func mergeUpdate(set bson.M, now time.Time) bson.M {
	return bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
		"$currentDate": bson.M{"updatedAt": true},
	}
}
