// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization includes case/diacritic-insensitive fields for search/sort.
// Member and project counts are derived from org_memberships and projects;
// they are never stored on the document.
type Organization struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // always stored
	City        string             `bson:"city,omitempty" json:"city,omitempty"`
	CityCI      string             `bson:"city_ci,omitempty" json:"-"`
	State       string             `bson:"state,omitempty" json:"state,omitempty"`
	StateCI     string             `bson:"state_ci,omitempty" json:"-"`
	ContactInfo string             `bson:"contact_info,omitempty" json:"contact_info,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
