// internal/domain/models/teammember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember is a person on a project team. Unlike User, a team member is
// not an account holder; phone/email/location are optional contact details.
// Every team member holds exactly one role.
type TeamMember struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	Name           string             `bson:"name" json:"name"`
	NameCI         string             `bson:"name_ci" json:"-"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	RoleID         primitive.ObjectID `bson:"role_id" json:"role_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
