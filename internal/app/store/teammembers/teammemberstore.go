// internal/app/store/teammembers/teammemberstore.go
package teammemberstore

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

const conflictMsg = "a team member with these details already exists"

type Store struct {
	c     *mongo.Collection
	roles *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("team_members"),
		roles: db.Collection("roles"),
	}
}

// Create inserts a team member. The role must exist in the member's
// organization.
func (s *Store) Create(ctx context.Context, tm models.TeamMember) (models.TeamMember, error) {
	err := s.roles.FindOne(ctx, bson.M{"_id": tm.RoleID, "organization_id": tm.OrganizationID}).Err()
	if err != nil {
		return models.TeamMember{}, apierr.FromMongo(err, "role", conflictMsg)
	}

	now := time.Now().UTC()
	tm.ID = primitive.NewObjectID()
	tm.Name = normalize.Name(tm.Name)
	tm.NameCI = text.Fold(tm.Name)
	tm.Phone = normalize.Phone(tm.Phone)
	tm.Email = normalize.Email(tm.Email)
	tm.CreatedAt = now
	tm.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, tm); err != nil {
		return models.TeamMember{}, apierr.FromMongo(err, "team member", conflictMsg)
	}
	return tm, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.TeamMember, error) {
	var tm models.TeamMember
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tm); err != nil {
		return models.TeamMember{}, apierr.FromMongo(err, "team member", conflictMsg)
	}
	return tm, nil
}

type ListOptions struct {
	OrganizationID primitive.ObjectID
	RoleID         *primitive.ObjectID
	Search         string
	Skip           int64
	Take           int64
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{"organization_id": o.OrganizationID}
	if o.RoleID != nil {
		filter["role_id"] = *o.RoleID
	}
	if o.Search != "" {
		needle := regexp.QuoteMeta(text.Fold(o.Search))
		filter["$or"] = bson.A{
			bson.M{"name_ci": bson.M{"$regex": needle}},
			bson.M{"phone": bson.M{"$regex": regexp.QuoteMeta(normalize.Phone(o.Search))}},
		}
	}
	return filter
}

func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.TeamMember, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "team member", conflictMsg)
	}
	defer cur.Close(ctx)

	var members []models.TeamMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, apierr.FromMongo(err, "team member", conflictMsg)
	}
	return members, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "team member", conflictMsg)
	}
	return n, nil
}

type Update struct {
	Name     *string
	Phone    *string
	Email    *string
	Location *string
	RoleID   *primitive.ObjectID
}

func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.TeamMember, error) {
	tm, err := s.GetByID(ctx, id)
	if err != nil {
		return models.TeamMember{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Phone != nil {
		set["phone"] = normalize.Phone(*upd.Phone)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.RoleID != nil {
		err := s.roles.FindOne(ctx, bson.M{"_id": *upd.RoleID, "organization_id": tm.OrganizationID}).Err()
		if err != nil {
			return models.TeamMember{}, apierr.FromMongo(err, "role", conflictMsg)
		}
		set["role_id"] = *upd.RoleID
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.TeamMember{}, apierr.FromMongo(err, "team member", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "team member", conflictMsg)
	}
	return nil
}
