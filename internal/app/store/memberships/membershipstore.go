// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"time"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const conflictMsg = "user is already a member of this organization"

// Store manages org memberships. It also reads the users, organizations and
// roles collections to enforce referential checks at add time.
type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
	orgs  *mongo.Collection
	roles *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("org_memberships"),
		users: db.Collection("users"),
		orgs:  db.Collection("organizations"),
		roles: db.Collection("roles"),
	}
}

// Add creates a membership after verifying the user, organization and role
// all exist and the role belongs to the organization.
func (s *Store) Add(ctx context.Context, userID, orgID, roleID primitive.ObjectID) (models.OrganizationMembership, error) {
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
		return models.OrganizationMembership{}, apierr.FromMongo(err, "user", conflictMsg)
	}
	if err := s.orgs.FindOne(ctx, bson.M{"_id": orgID}).Err(); err != nil {
		return models.OrganizationMembership{}, apierr.FromMongo(err, "organization", conflictMsg)
	}
	err := s.roles.FindOne(ctx, bson.M{"_id": roleID, "organization_id": orgID}).Err()
	if err != nil {
		return models.OrganizationMembership{}, apierr.FromMongo(err, "role", conflictMsg)
	}

	m := models.OrganizationMembership{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		OrgID:     orgID,
		RoleID:    roleID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.OrganizationMembership{}, apierr.FromMongo(err, "membership", conflictMsg)
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.OrganizationMembership, error) {
	var m models.OrganizationMembership
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.OrganizationMembership{}, apierr.FromMongo(err, "membership", conflictMsg)
	}
	return m, nil
}

// UpdateRole changes the role of an existing membership. The new role must
// belong to the membership's organization.
func (s *Store) UpdateRole(ctx context.Context, id, roleID primitive.ObjectID) (models.OrganizationMembership, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return models.OrganizationMembership{}, err
	}
	err = s.roles.FindOne(ctx, bson.M{"_id": roleID, "organization_id": m.OrgID}).Err()
	if err != nil {
		return models.OrganizationMembership{}, apierr.FromMongo(err, "role", conflictMsg)
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role_id": roleID}}); err != nil {
		return models.OrganizationMembership{}, apierr.FromMongo(err, "membership", conflictMsg)
	}
	m.RoleID = roleID
	return m, nil
}

// Remove deletes a membership by ID.
func (s *Store) Remove(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "membership", conflictMsg)
	}
	return nil
}

// CountByRole returns the number of memberships referencing the given role.
func (s *Store) CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"role_id": roleID})
	if err != nil {
		return 0, apierr.FromMongo(err, "membership", conflictMsg)
	}
	return n, nil
}

// CountByOrganization returns the number of members in an organization.
func (s *Store) CountByOrganization(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"org_id": orgID})
	if err != nil {
		return 0, apierr.FromMongo(err, "membership", conflictMsg)
	}
	return n, nil
}
