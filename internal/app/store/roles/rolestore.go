// internal/app/store/roles/rolestore.go
package rolestore

import (
	"context"
	"regexp"
	"time"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const conflictMsg = "a role with this name already exists in the organization"

// Store manages roles. It also reads org_memberships and team_members to
// compute how many people hold a role.
type Store struct {
	c           *mongo.Collection
	memberships *mongo.Collection
	teamMembers *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection("roles"),
		memberships: db.Collection("org_memberships"),
		teamMembers: db.Collection("team_members"),
	}
}

func (s *Store) Create(ctx context.Context, role models.Role) (models.Role, error) {
	now := time.Now().UTC()
	role.ID = primitive.NewObjectID()
	role.Name = normalize.Name(role.Name)
	role.NameCI = text.Fold(role.Name)
	role.CreatedAt = now
	role.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, role); err != nil {
		return models.Role{}, apierr.FromMongo(err, "role", conflictMsg)
	}
	return role, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Role, error) {
	var role models.Role
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&role); err != nil {
		return models.Role{}, apierr.FromMongo(err, "role", conflictMsg)
	}
	return role, nil
}

type ListOptions struct {
	OrganizationID primitive.ObjectID
	Search         string
	Skip           int64
	Take           int64
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{"organization_id": o.OrganizationID}
	if o.Search != "" {
		filter["name_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(o.Search))}
	}
	return filter
}

func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.Role, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "role", conflictMsg)
	}
	defer cur.Close(ctx)

	var roles []models.Role
	if err := cur.All(ctx, &roles); err != nil {
		return nil, apierr.FromMongo(err, "role", conflictMsg)
	}
	return roles, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "role", conflictMsg)
	}
	return n, nil
}

type Update struct {
	Name        *string
	Description *string
}

func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.Role, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return models.Role{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Role{}, apierr.FromMongo(err, "role", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "role", conflictMsg)
	}
	return nil
}

// MemberCount returns how many people currently hold the role, counting
// both organization members and project team members.
func (s *Store) MemberCount(ctx context.Context, id primitive.ObjectID) (int64, error) {
	nMembers, err := s.memberships.CountDocuments(ctx, bson.M{"role_id": id})
	if err != nil {
		return 0, apierr.FromMongo(err, "role", conflictMsg)
	}
	nTeam, err := s.teamMembers.CountDocuments(ctx, bson.M{"role_id": id})
	if err != nil {
		return 0, apierr.FromMongo(err, "role", conflictMsg)
	}
	return nMembers + nTeam, nil
}
