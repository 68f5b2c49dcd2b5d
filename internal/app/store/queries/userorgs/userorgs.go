package userorgs

import (
	"context"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserOrg is one row of a user's organization listing: the joined
// organization plus the role the user holds in it, with the same derived
// counts the organization detail carries.
type UserOrg struct {
	MembershipID primitive.ObjectID  `bson:"membership_id" json:"membership_id"`
	Organization models.Organization `bson:"organization" json:"organization"`
	Role         models.Role         `bson:"role" json:"role"`
	MemberCount  int64               `bson:"member_count" json:"member_count"`
	ProjectCount int64               `bson:"project_count" json:"project_count"`
}

// ListUserOrgs returns the organizations a user belongs to with the role
// joined in, ordered by organization name.
func ListUserOrgs(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]UserOrg, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user_id": userID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "organizations",
			"localField":   "org_id",
			"foreignField": "_id",
			"as":           "organization",
		}}},
		bson.D{{Key: "$unwind", Value: "$organization"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "roles",
			"localField":   "role_id",
			"foreignField": "_id",
			"as":           "role",
		}}},
		bson.D{{Key: "$unwind", Value: "$role"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "org_memberships",
			"localField":   "org_id",
			"foreignField": "org_id",
			"as":           "member_rows",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "projects",
			"localField":   "org_id",
			"foreignField": "organization_id",
			"as":           "project_rows",
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "organization.name_ci", Value: 1},
			{Key: "organization._id", Value: 1},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"membership_id": "$_id",
			"organization":  1,
			"role":          1,
			"member_count":  bson.M{"$size": "$member_rows"},
			"project_count": bson.M{"$size": "$project_rows"},
		}}},
	}

	cur, err := db.Collection("org_memberships").Aggregate(ctx, pipe)
	if err != nil {
		return nil, apierr.FromMongo(err, "membership", "")
	}
	defer cur.Close(ctx)

	var out []UserOrg
	if err := cur.All(ctx, &out); err != nil {
		return nil, apierr.FromMongo(err, "membership", "")
	}
	return out, nil
}
