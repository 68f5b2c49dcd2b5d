// internal/app/store/stages/stagestore.go
package stagestore

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

const conflictMsg = "a stage with this name already exists in the project"

// Store manages stages. It reads the tasks collection to derive per-stage
// statistics; task counts are never denormalized onto stage documents.
type Store struct {
	c     *mongo.Collection
	tasks *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("stages"),
		tasks: db.Collection("tasks"),
	}
}

// Create inserts a stage. When Order is zero the stage is appended after
// the project's current last stage.
func (s *Store) Create(ctx context.Context, st models.Stage) (models.Stage, error) {
	now := time.Now().UTC()
	st.ID = primitive.NewObjectID()
	st.Name = normalize.Name(st.Name)
	st.NameCI = text.Fold(st.Name)
	st.CreatedAt = now
	st.UpdatedAt = now

	if st.Order == 0 {
		last, err := s.maxOrder(ctx, st.ProjectID)
		if err != nil {
			return models.Stage{}, err
		}
		st.Order = last + 1
	}

	if _, err := s.c.InsertOne(ctx, st); err != nil {
		return models.Stage{}, apierr.FromMongo(err, "stage", conflictMsg)
	}
	return st, nil
}

func (s *Store) maxOrder(ctx context.Context, projectID primitive.ObjectID) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})
	var last models.Stage
	err := s.c.FindOne(ctx, bson.M{"project_id": projectID}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, apierr.FromMongo(err, "stage", conflictMsg)
	}
	return last.Order, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Stage, error) {
	var st models.Stage
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		return models.Stage{}, apierr.FromMongo(err, "stage", conflictMsg)
	}
	return st, nil
}

type ListOptions struct {
	ProjectID primitive.ObjectID
	Search    string
	Skip      int64
	Take      int64
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{"project_id": o.ProjectID}
	if o.Search != "" {
		filter["name_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(o.Search))}
	}
	return filter
}

// Find returns a page of stages in project order.
func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.Stage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "stage", conflictMsg)
	}
	defer cur.Close(ctx)

	var stages []models.Stage
	if err := cur.All(ctx, &stages); err != nil {
		return nil, apierr.FromMongo(err, "stage", conflictMsg)
	}
	return stages, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "stage", conflictMsg)
	}
	return n, nil
}

type Update struct {
	Name  *string
	Order *int
}

func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.Stage, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return models.Stage{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Order != nil {
		set["order"] = *upd.Order
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Stage{}, apierr.FromMongo(err, "stage", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a stage and every task in it.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "stage", conflictMsg)
	}
	if _, err := s.tasks.DeleteMany(ctx, bson.M{"stage_id": id}); err != nil {
		return apierr.FromMongo(err, "task", conflictMsg)
	}
	return nil
}

// Stats are the derived task counts for a stage.
type Stats struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
}

// TaskStats counts the stage's tasks by status. The stage must exist.
func (s *Store) TaskStats(ctx context.Context, id primitive.ObjectID) (Stats, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return Stats{}, err
	}

	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"stage_id": id}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := s.tasks.Aggregate(ctx, pipe)
	if err != nil {
		return Stats{}, apierr.FromMongo(err, "stage", conflictMsg)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return Stats{}, apierr.FromMongo(err, "stage", conflictMsg)
	}

	var st Stats
	for _, row := range rows {
		st.Total += row.Count
		switch row.Status {
		case models.TaskTodo:
			st.Todo = row.Count
		case models.TaskInProgress:
			st.InProgress = row.Count
		case models.TaskDone:
			st.Done = row.Count
		}
	}
	return st, nil
}
