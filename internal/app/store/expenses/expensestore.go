// internal/app/store/expenses/expensestore.go
package expensestore

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

const conflictMsg = "duplicate expense"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("expenses")}
}

func (s *Store) Create(ctx context.Context, e models.Expense) (models.Expense, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.Title = normalize.Name(e.Title)
	e.TitleCI = text.Fold(e.Title)
	if e.Date.IsZero() {
		e.Date = now
	}
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Expense{}, apierr.FromMongo(err, "expense", conflictMsg)
	}
	return e, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Expense, error) {
	var e models.Expense
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Expense{}, apierr.FromMongo(err, "expense", conflictMsg)
	}
	return e, nil
}

type ListOptions struct {
	ProjectID primitive.ObjectID
	Category  string
	Search    string
	Skip      int64
	Take      int64
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{"project_id": o.ProjectID}
	if o.Category != "" {
		filter["category"] = o.Category
	}
	if o.Search != "" {
		filter["title_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(o.Search))}
	}
	return filter
}

// Find returns a page of expenses, newest first.
func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.Expense, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "expense", conflictMsg)
	}
	defer cur.Close(ctx)

	var expenses []models.Expense
	if err := cur.All(ctx, &expenses); err != nil {
		return nil, apierr.FromMongo(err, "expense", conflictMsg)
	}
	return expenses, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "expense", conflictMsg)
	}
	return n, nil
}

type Update struct {
	Category *string
	Title    *string
	Amount   *float64
	Date     *time.Time
}

func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.Expense, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return models.Expense{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Title != nil {
		title := normalize.Name(*upd.Title)
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if upd.Amount != nil {
		set["amount"] = *upd.Amount
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Expense{}, apierr.FromMongo(err, "expense", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "expense", conflictMsg)
	}
	return nil
}

// CategorySummary is one row of the per-project expense rollup.
type CategorySummary struct {
	Category string  `bson:"_id" json:"category"`
	Total    float64 `bson:"total" json:"total"`
	Count    int64   `bson:"count" json:"count"`
}

// SummaryByCategory groups a project's expenses by category with totals,
// largest total first.
func (s *Store) SummaryByCategory(ctx context.Context, projectID primitive.ObjectID) ([]CategorySummary, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"project_id": projectID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, apierr.FromMongo(err, "expense", conflictMsg)
	}
	defer cur.Close(ctx)

	var rows []CategorySummary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apierr.FromMongo(err, "expense", conflictMsg)
	}
	return rows, nil
}
