// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreateUser creates a test user with the given name and phone.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, phone string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Phone:      phone,
		Status:     models.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.insert(ctx, "users", user)
	return user
}

// CreateOrganization creates a test organization with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		City:      "Test City",
		CityCI:    text.Fold("Test City"),
		State:     "TS",
		StateCI:   text.Fold("TS"),
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "organizations", org)
	return org
}

// CreateRole creates a test role in the given organization.
func (f *Fixtures) CreateRole(ctx context.Context, orgID primitive.ObjectID, name string) models.Role {
	f.t.Helper()

	now := time.Now().UTC()
	role := models.Role{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "roles", role)
	return role
}

// CreateMembership joins a user to an organization under a role.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, orgID, roleID primitive.ObjectID) models.OrganizationMembership {
	f.t.Helper()

	m := models.OrganizationMembership{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		OrgID:     orgID,
		RoleID:    roleID,
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, "org_memberships", m)
	return m
}

// CreateTeamMember creates a test team member holding the given role.
func (f *Fixtures) CreateTeamMember(ctx context.Context, orgID, roleID primitive.ObjectID, name string) models.TeamMember {
	f.t.Helper()

	now := time.Now().UTC()
	tm := models.TeamMember{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           name,
		NameCI:         text.Fold(name),
		RoleID:         roleID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "team_members", tm)
	return tm
}

// CreateProject creates a test project in the given organization.
func (f *Fixtures) CreateProject(ctx context.Context, orgID primitive.ObjectID, name string) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           name,
		NameCI:         text.Fold(name),
		Status:         models.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "projects", p)
	return p
}

// CreateParty creates a test party with a zero balance.
func (f *Fixtures) CreateParty(ctx context.Context, orgID primitive.ObjectID, name, partyType string) models.Party {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Party{
		ID:             primitive.NewObjectID(),
		OrganizationID: orgID,
		Name:           name,
		NameCI:         text.Fold(name),
		Type:           partyType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "parties", p)
	return p
}

// CreateTransaction creates a test ledger entry against a party. It does
// not touch the party balance; balance orchestration is exercised through
// the transactions feature.
func (f *Fixtures) CreateTransaction(ctx context.Context, partyID primitive.ObjectID, tab, title string, amount float64) models.Transaction {
	f.t.Helper()

	now := time.Now().UTC()
	txn := models.Transaction{
		ID:        primitive.NewObjectID(),
		PartyID:   partyID,
		Tab:       tab,
		Date:      now,
		Title:     title,
		TitleCI:   text.Fold(title),
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "transactions", txn)
	return txn
}

// CreateStage creates a test stage at the given order.
func (f *Fixtures) CreateStage(ctx context.Context, projectID primitive.ObjectID, name string, order int) models.Stage {
	f.t.Helper()

	now := time.Now().UTC()
	st := models.Stage{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Name:      name,
		NameCI:    text.Fold(name),
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "stages", st)
	return st
}

// CreateTask creates a test task in the given stage with the given status.
func (f *Fixtures) CreateTask(ctx context.Context, stageID primitive.ObjectID, title, status string) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:        primitive.NewObjectID(),
		StageID:   stageID,
		Title:     title,
		TitleCI:   text.Fold(title),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "tasks", task)
	return task
}

// CreateExpense creates a test project expense in the given category.
func (f *Fixtures) CreateExpense(ctx context.Context, projectID primitive.ObjectID, category, title string, amount float64) models.Expense {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Expense{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Category:  category,
		Title:     title,
		TitleCI:   text.Fold(title),
		Amount:    amount,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "expenses", e)
	return e
}

// CreateDocument creates test document metadata for a project.
func (f *Fixtures) CreateDocument(ctx context.Context, projectID primitive.ObjectID, fileName, filePath string) models.Document {
	f.t.Helper()

	d := models.Document{
		ID:          primitive.NewObjectID(),
		ProjectID:   projectID,
		FileName:    fileName,
		FilePath:    filePath,
		Size:        1024,
		ContentType: "application/octet-stream",
		CreatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "documents", d)
	return d
}
