// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a person who can belong to organizations.
//
// NOTE:
//   - Organization membership is not embedded on User.
//     Use the org_memberships collection to discover a user's organizations.
//   - Phone is the unique login identifier (normalized before storage).
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Phone      string             `bson:"phone" json:"phone"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
