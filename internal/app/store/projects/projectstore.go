// internal/app/store/projects/projectstore.go
package projectstore

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

const conflictMsg = "a project with this name already exists"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, apierr.FromMongo(err, "project", conflictMsg)
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Project{}, apierr.FromMongo(err, "project", conflictMsg)
	}
	return p, nil
}

// GetByIDs loads multiple projects in one round trip.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apierr.FromMongo(err, "project", conflictMsg)
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, apierr.FromMongo(err, "project", conflictMsg)
	}
	return projects, nil
}

type ListOptions struct {
	OrganizationID primitive.ObjectID
	Status         string
	Search         string
	Skip           int64
	Take           int64
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{"organization_id": o.OrganizationID}
	if o.Status != "" {
		filter["status"] = o.Status
	}
	if o.Search != "" {
		needle := regexp.QuoteMeta(text.Fold(o.Search))
		filter["$or"] = bson.A{
			bson.M{"name_ci": bson.M{"$regex": needle}},
			bson.M{"location": bson.M{"$regex": needle, "$options": "i"}},
		}
	}
	return filter
}

func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.Project, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "project", conflictMsg)
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, apierr.FromMongo(err, "project", conflictMsg)
	}
	return projects, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "project", conflictMsg)
	}
	return n, nil
}

type Update struct {
	Name        *string
	Description *string
	Location    *string
	Status      *string
}

func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.Project, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return models.Project{}, err
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
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Project{}, apierr.FromMongo(err, "project", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "project", conflictMsg)
	}
	return nil
}
