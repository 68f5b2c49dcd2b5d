// internal/app/store/tasks/taskstore.go
package taskstore

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

const conflictMsg = "duplicate task"

type Store struct {
	c      *mongo.Collection
	stages *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:      db.Collection("tasks"),
		stages: db.Collection("stages"),
	}
}

// Create inserts a task into an existing stage.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	if err := s.stages.FindOne(ctx, bson.M{"_id": t.StageID}).Err(); err != nil {
		return models.Task{}, apierr.FromMongo(err, "stage", conflictMsg)
	}

	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.Title = normalize.Name(t.Title)
	t.TitleCI = text.Fold(t.Title)
	if t.Status == "" {
		t.Status = models.TaskTodo
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, apierr.FromMongo(err, "task", conflictMsg)
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Task{}, apierr.FromMongo(err, "task", conflictMsg)
	}
	return t, nil
}

type ListOptions struct {
	StageID *primitive.ObjectID
	Status  string
	Search  string
	Skip    int64
	Take    int64
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{}
	if o.StageID != nil {
		filter["stage_id"] = *o.StageID
	}
	if o.Status != "" {
		filter["status"] = o.Status
	}
	if o.Search != "" {
		filter["title_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(o.Search))}
	}
	return filter
}

func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.Task, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "task", conflictMsg)
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, apierr.FromMongo(err, "task", conflictMsg)
	}
	return tasks, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "task", conflictMsg)
	}
	return n, nil
}

type Update struct {
	Title      *string
	Status     *string
	StageID    *primitive.ObjectID
	AssigneeID *primitive.ObjectID
}

// UpdateByID applies a partial update and returns the updated task. Moving
// a task requires the destination stage to exist.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.Task, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return models.Task{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		title := normalize.Name(*upd.Title)
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.StageID != nil {
		if err := s.stages.FindOne(ctx, bson.M{"_id": *upd.StageID}).Err(); err != nil {
			return models.Task{}, apierr.FromMongo(err, "stage", conflictMsg)
		}
		set["stage_id"] = *upd.StageID
	}
	if upd.AssigneeID != nil {
		set["assignee_id"] = *upd.AssigneeID
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Task{}, apierr.FromMongo(err, "task", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "task", conflictMsg)
	}
	return nil
}
