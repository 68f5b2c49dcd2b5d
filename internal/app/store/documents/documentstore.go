// internal/app/store/documents/documentstore.go
package documentstore

import (
	"context"
	"time"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const conflictMsg = "duplicate document"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("documents")}
}

// Create records metadata for an uploaded file. The bytes are already in
// storage when this runs.
func (s *Store) Create(ctx context.Context, d models.Document) (models.Document, error) {
	d.ID = primitive.NewObjectID()
	d.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Document{}, apierr.FromMongo(err, "document", conflictMsg)
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var d models.Document
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Document{}, apierr.FromMongo(err, "document", conflictMsg)
	}
	return d, nil
}

type ListOptions struct {
	ProjectID primitive.ObjectID
	Skip      int64
	Take      int64
}

// Find returns a page of a project's documents, newest first.
func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.Document, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, bson.M{"project_id": o.ProjectID}, opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "document", conflictMsg)
	}
	defer cur.Close(ctx)

	var docs []models.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apierr.FromMongo(err, "document", conflictMsg)
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"project_id": o.ProjectID})
	if err != nil {
		return 0, apierr.FromMongo(err, "document", conflictMsg)
	}
	return n, nil
}

// Delete removes the metadata record. Removing the stored bytes is the
// caller's responsibility.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "document", conflictMsg)
	}
	return nil
}
