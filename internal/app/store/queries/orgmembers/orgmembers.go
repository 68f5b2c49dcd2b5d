package orgmembers

import (
	"context"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrgMember is one row of an organization's member listing: the joined
// user plus the role they hold.
type OrgMember struct {
	MembershipID primitive.ObjectID `bson:"membership_id" json:"membership_id"`
	User         models.User        `bson:"user" json:"user"`
	Role         models.Role        `bson:"role" json:"role"`
}

// ListOrgMembers returns the members of an organization with user and role
// joined in, paged and ordered by user name.
func ListOrgMembers(ctx context.Context, db *mongo.Database, orgID primitive.ObjectID, skip, take int64) ([]OrgMember, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"org_id": orgID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		bson.D{{Key: "$unwind", Value: "$user"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "roles",
			"localField":   "role_id",
			"foreignField": "_id",
			"as":           "role",
		}}},
		bson.D{{Key: "$unwind", Value: "$role"}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "user.full_name_ci", Value: 1},
			{Key: "user._id", Value: 1},
		}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: take}},
		bson.D{{Key: "$project", Value: bson.M{
			"membership_id": "$_id",
			"user":          1,
			"role":          1,
		}}},
	}

	cur, err := db.Collection("org_memberships").Aggregate(ctx, pipe)
	if err != nil {
		return nil, apierr.FromMongo(err, "membership", "")
	}
	defer cur.Close(ctx)

	var out []OrgMember
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.FromMongo(err, "membership", "")
	}
	return out, nil
}
