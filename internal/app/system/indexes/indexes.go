// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Index creation with a fixed name and
identical options is idempotent, so each ensure* function can run on every
boot. Errors are aggregated so any problem is visible and startup can fail
fast.

The unique indexes here back the application-layer invariants:

  - users.phone is unique (Conflict on duplicate create)
  - organizations.name_ci is unique
  - roles are unique per (organization_id, name_ci)
  - one membership per (user_id, org_id)
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	for _, e := range []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"users", ensureUsers},
		{"organizations", ensureOrganizations},
		{"org_memberships", ensureMemberships},
		{"roles", ensureRoles},
		{"team_members", ensureTeamMembers},
		{"projects", ensureProjects},
		{"parties", ensureParties},
		{"transactions", ensureTransactions},
		{"stages", ensureStages},
		{"tasks", ensureTasks},
		{"expenses", ensureExpenses},
		{"documents", ensureDocuments},
		{"phone_verifications", ensurePhoneVerifications},
	} {
		if err := e.fn(ctx, db); err != nil {
			problems = append(problems, e.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensure(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName("uniq_users_phone").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_fullnameci_id"),
		},
	})
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "organizations", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_orgs_nameci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_orgs_status_nameci_id"),
		},
	})
}

func ensureMemberships(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "org_memberships", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "org_id", Value: 1}},
			Options: options.Index().SetName("uniq_memberships_user_org").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "org_id", Value: 1}},
			Options: options.Index().SetName("idx_memberships_org"),
		},
		{
			Keys:    bson.D{{Key: "role_id", Value: 1}},
			Options: options.Index().SetName("idx_memberships_role"),
		},
	})
}

func ensureRoles(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "roles", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_roles_org_nameci").SetUnique(true),
		},
	})
}

func ensureTeamMembers(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "team_members", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_teammembers_org_nameci_id"),
		},
		{
			Keys:    bson.D{{Key: "role_id", Value: 1}},
			Options: options.Index().SetName("idx_teammembers_role"),
		},
	})
}

func ensureProjects(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "projects", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_projects_org_nameci_id"),
		},
	})
}

func ensureParties(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "parties", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "type", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_parties_org_type_nameci"),
		},
		{
			Keys:    bson.D{{Key: "project_ids", Value: 1}},
			Options: options.Index().SetName("idx_parties_projects"),
		},
	})
}

func ensureTransactions(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "transactions", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "party_id", Value: 1}, {Key: "date", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_txns_party_date_id"),
		},
		{
			Keys:    bson.D{{Key: "tab", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_txns_tab_date"),
		},
	})
}

func ensureStages(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "stages", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetName("idx_stages_project_order"),
		},
	})
}

func ensureTasks(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "tasks", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "stage_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_tasks_stage_status"),
		},
	})
}

func ensureExpenses(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "expenses", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_expenses_project_category"),
		},
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_expenses_project_date"),
		},
	})
}

func ensureDocuments(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "documents", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_documents_project_created"),
		},
	})
}

func ensurePhoneVerifications(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "phone_verifications", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_phoneverify_expires_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName("uniq_phoneverify_phone").SetUnique(true),
		},
	})
}
