// internal/app/store/transactions/transactionstore.go
package transactionstore

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

const conflictMsg = "duplicate transaction"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("transactions")}
}

// Create inserts a ledger entry. Party balance adjustment is the caller's
// responsibility.
func (s *Store) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.Title = normalize.Name(t.Title)
	t.TitleCI = text.Fold(t.Title)
	if t.Date.IsZero() {
		t.Date = now
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Transaction{}, apierr.FromMongo(err, "transaction", conflictMsg)
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Transaction, error) {
	var t models.Transaction
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Transaction{}, apierr.FromMongo(err, "transaction", conflictMsg)
	}
	return t, nil
}

type ListOptions struct {
	PartyID *primitive.ObjectID
	Tab     string
	Search  string
	Skip    int64
	Take    int64
}

func (o ListOptions) filter() bson.M {
	filter := bson.M{}
	if o.PartyID != nil {
		filter["party_id"] = *o.PartyID
	}
	if o.Tab != "" {
		filter["tab"] = o.Tab
	}
	if o.Search != "" {
		filter["title_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(o.Search))}
	}
	return filter
}

// Find returns a page of transactions, newest first.
func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.Transaction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "transaction", conflictMsg)
	}
	defer cur.Close(ctx)

	var txns []models.Transaction
	if err := cur.All(ctx, &txns); err != nil {
		return nil, apierr.FromMongo(err, "transaction", conflictMsg)
	}
	return txns, nil
}

func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "transaction", conflictMsg)
	}
	return n, nil
}

type Update struct {
	Title  *string
	Amount *float64
	Date   *time.Time
	Tab    *string
}

// UpdateByID applies a partial update and returns the updated entry. The
// caller compares old and new BalanceDelta to adjust the party balance.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.Transaction, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return models.Transaction{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
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
	if upd.Tab != nil {
		set["tab"] = *upd.Tab
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.Transaction{}, apierr.FromMongo(err, "transaction", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "transaction", conflictMsg)
	}
	return nil
}
