// internal/domain/models/party.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Party types form a closed set.
const (
	PartyVendor        = "vendor"
	PartyLabour        = "labour"
	PartySubcontractor = "subcontractor"
)

// ValidPartyType reports whether t is one of the known party types.
func ValidPartyType(t string) bool {
	switch t {
	case PartyVendor, PartyLabour, PartySubcontractor:
		return true
	}
	return false
}

// Party is a vendor, labour gang, or subcontractor an organization does
// business with. Balance is the running amount owed to the party: expense
// transactions raise it, payment transactions lower it. ProjectIDs are the
// project-credit links (projects the party has billed against).
type Party struct {
	ID             primitive.ObjectID   `bson:"_id" json:"id"`
	OrganizationID primitive.ObjectID   `bson:"organization_id" json:"organization_id"`
	Name           string               `bson:"name" json:"name"`
	NameCI         string               `bson:"name_ci" json:"-"`
	Type           string               `bson:"type" json:"type"` // vendor | labour | subcontractor
	Balance        float64              `bson:"balance" json:"balance"`
	ProjectIDs     []primitive.ObjectID `bson:"project_ids,omitempty" json:"project_ids,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
