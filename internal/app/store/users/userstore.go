package userstore

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

const conflictMsg = "a user with this phone number already exists"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user after normalizing name and phone.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Phone = normalize.Phone(u.Phone)
	u.Email = normalize.Email(u.Email)
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.User{}, apierr.FromMongo(err, "user", conflictMsg)
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, apierr.FromMongo(err, "user", conflictMsg)
	}
	return u, nil
}

// GetByPhone looks up a user by normalized phone number.
func (s *Store) GetByPhone(ctx context.Context, phone string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"phone": normalize.Phone(phone)}).Decode(&u); err != nil {
		return models.User{}, apierr.FromMongo(err, "user", conflictMsg)
	}
	return u, nil
}

// ListOptions narrows and pages a user listing.
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
		or := bson.A{
			bson.M{"full_name_ci": bson.M{"$regex": needle}},
		}
		// A non-numeric term normalizes to "", and an empty $regex
		// matches every phone.
		if digits := normalize.Phone(o.Search); digits != "" {
			or = append(or, bson.M{"phone": bson.M{"$regex": regexp.QuoteMeta(digits)}})
		}
		filter["$or"] = or
	}
	return filter
}

// Find returns a page of users ordered by folded name.
func (s *Store) Find(ctx context.Context, o ListOptions) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(o.Skip).
		SetLimit(o.Take)
	cur, err := s.c.Find(ctx, o.filter(), opts)
	if err != nil {
		return nil, apierr.FromMongo(err, "user", conflictMsg)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, apierr.FromMongo(err, "user", conflictMsg)
	}
	return users, nil
}

// Count returns the number of users matching the listing filter.
func (s *Store) Count(ctx context.Context, o ListOptions) (int64, error) {
	n, err := s.c.CountDocuments(ctx, o.filter())
	if err != nil {
		return 0, apierr.FromMongo(err, "user", conflictMsg)
	}
	return n, nil
}

// Update holds the fields a caller may change. Nil pointers are left as-is.
type Update struct {
	FullName *string
	Email    *string
	Status   *string
}

// UpdateByID applies a partial update and returns the updated document.
// Returns a not-found error when no user has the given ID.
func (s *Store) UpdateByID(ctx context.Context, id primitive.ObjectID, upd Update) (models.User, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return models.User{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FullName != nil {
		name := normalize.Name(*upd.FullName)
		set["full_name"] = name
		set["full_name_ci"] = text.Fold(name)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return models.User{}, apierr.FromMongo(err, "user", conflictMsg)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a user by ID. Returns a not-found error when the user does
// not exist.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apierr.FromMongo(err, "user", conflictMsg)
	}
	return nil
}
