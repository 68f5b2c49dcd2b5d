// internal/domain/models/membership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrganizationMembership is the authoritative join between users and
// organizations. Exactly one document per (user_id, org_id); the role the
// user holds inside the organization is a reference to the roles collection.
type OrganizationMembership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	OrgID     primitive.ObjectID `bson:"org_id" json:"org_id"`
	RoleID    primitive.ObjectID `bson:"role_id" json:"role_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
