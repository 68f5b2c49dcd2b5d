// internal/app/store/organizations/organizationstore.go
package organizationstore

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

const conflictMsg = "an organization with this name already exists"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.Name = normalize.Name(org.Name)
	org.NameCI = text.Fold(org.Name)
	org.CityCI = text.Fold(org.City)
	org.StateCI = text.Fold(org.State)
	if org.Status == "" {
		org.Status = models.StatusActive
	}
	org.CreatedAt = now
	org.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, org); err != nil {
		return models.Organization{}, apierr.FromMongo(err, "organization", conflictMsg)
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org); err != nil {
		return models.Organization{}, apierr.FromMongo(err, "organization", conflictMsg)
	}
	return org, nil
}

// GetByIDs loads multiple organizations in one round trip.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apierr.FromMongo(err, "organization", conflictMsg)
	}
	defer cur.Close(ctx)

	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, apierr.FromMongo(err, "organization", conflictMsg)
	}
	return orgs, nil
}

// ListOptions narrows and pages an organization listing.
type ListOptions struct {
	Search string
	Status string
	Skip   int64
	Take   int64
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{}
	if o.Status != "" {
		filter["status"] = o.Status
	}
	if o.Search != "" {
		needle := regexp.QuoteMeta(text.Fold(o.Search))
		filter["$or"] = bson.A{
			bson.M{"name_ci": bson.M{"$regex": needle}},
			bson.M{"city_ci": bson.M{"$regex": needle}},
			bson.M{"state_ci": bson.M{"$regex": needle}},
		}
	}
	return filter
}

func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.Organization, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "organization", conflictMsg)
	}
	defer cur.Close(ctx)

	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, apierr.FromMongo(err, "organization", conflictMsg)
	}
	return orgs, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "organization", conflictMsg)
	}
	return n, nil
}

// Update holds the fields a caller may change. Nil pointers are left as-is.
type Update struct {
	Name        *string
	City        *string
	State       *string
	ContactInfo *string
	Status      *string
}

func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.Organization, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return models.Organization{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.City != nil {
		set["city"] = *upd.City
		set["city_ci"] = text.Fold(*upd.City)
	}
	if upd.State != nil {
		set["state"] = *upd.State
		set["state_ci"] = text.Fold(*upd.State)
	}
	if upd.ContactInfo != nil {
		set["contact_info"] = *upd.ContactInfo
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Organization{}, apierr.FromMongo(err, "organization", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "organization", conflictMsg)
	}
	return nil
}
