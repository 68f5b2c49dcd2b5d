// internal/app/store/parties/partystore.go
package partystore

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

const conflictMsg = "a party with this name already exists"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("parties")}
}

// Create inserts a party with a zero balance. Balance is only ever changed
// through ApplyBalanceDelta.
func (s *Store) Create(ctx context.Context, p models.Party) (models.Party, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	p.Balance = 0
	p.ProjectIDs = nil
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Party{}, apierr.FromMongo(err, "party", conflictMsg)
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Party, error) {
	var p models.Party
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Party{}, apierr.FromMongo(err, "party", conflictMsg)
	}
	return p, nil
}

type ListOptions struct {
	OrganizationID primitive.ObjectID
	Type           string
	ProjectID      *primitive.ObjectID
	Search         string
	Skip           int64
	Take           int64
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{"organization_id": o.OrganizationID}
	if o.Type != "" {
		filter["type"] = o.Type
	}
	if o.ProjectID != nil {
		filter["project_ids"] = *o.ProjectID
	}
	if o.Search != "" {
		filter["name_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(o.Search))}
	}
	return filter
}

func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.Party, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "party", conflictMsg)
	}
	defer cur.Close(ctx)

	var parties []models.Party
	if err := cur.All(ctx, &parties); err != nil {
		return nil, apierr.FromMongo(err, "party", conflictMsg)
	}
	return parties, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "party", conflictMsg)
	}
	return n, nil
}

type Update struct {
	Name *string
	Type *string
}

func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.Party, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return models.Party{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Party{}, apierr.FromMongo(err, "party", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "party", conflictMsg)
	}
	return nil
}

// ApplyBalanceDelta atomically adds delta to the party's running balance.
func (s *Store) ApplyBalanceDelta(ctx context.Context, id primitive.ObjectID, delta float64) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"balance": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apierr.FromMongo(err, "party", conflictMsg)
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("party")
	}
	return nil
}

// LinkProject records that the party has billed against the project.
// Adding an already-linked project is a no-op.
func (s *Store) LinkProject(ctx context.Context, id, projectID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"project_ids": projectID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apierr.FromMongo(err, "party", conflictMsg)
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("party")
	}
	return nil
}

// UnlinkProject removes a project-credit link.
func (s *Store) UnlinkProject(ctx context.Context, id, projectID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"project_ids": projectID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apierr.FromMongo(err, "party", conflictMsg)
	}
	if res.MatchedCount == 0 {
		return apierr.NotFound("party")
	}
	return nil
}
