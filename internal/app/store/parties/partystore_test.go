package partystore

import (
	"testing"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/sitedesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_ForcesZeroBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	org := f.CreateOrganization(ctx, "Alpha Constructions")

	store := New(db)
	created, err := store.Create(ctx, models.Party{
		OrganizationID: org.ID,
		Name:           "Sharma Cement Supply",
		Type:           models.PartyVendor,
		Balance:        9999, // must be ignored
		ProjectIDs:     []primitive.ObjectID{primitive.NewObjectID()},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Balance != 0 {
		t.Errorf("balance: got %v, want 0", created.Balance)
	}
	if len(created.ProjectIDs) != 0 {
		t.Errorf("project links must start empty, got %v", created.ProjectIDs)
	}
}

func TestApplyBalanceDelta(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	org := f.CreateOrganization(ctx, "Alpha Constructions")
	party := f.CreateParty(ctx, org.ID, "Sharma Cement Supply", models.PartyVendor)

	store := New(db)
	if err := store.ApplyBalanceDelta(ctx, party.ID, 1500); err != nil {
		t.Fatalf("ApplyBalanceDelta failed: %v", err)
	}
	if err := store.ApplyBalanceDelta(ctx, party.ID, -600); err != nil {
		t.Fatalf("ApplyBalanceDelta failed: %v", err)
	}

	got, err := store.GetByID(ctx, party.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Balance != 900 {
		t.Errorf("balance: got %v, want 900", got.Balance)
	}

	err = store.ApplyBalanceDelta(ctx, primitive.NewObjectID(), 10)
	if apierr.KindOf(err) != apierr.KindNotFound {
		t.Errorf("missing party kind: got %q, want not_found", apierr.KindOf(err))
	}
}

func TestLinkAndUnlinkProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	org := f.CreateOrganization(ctx, "Alpha Constructions")
	party := f.CreateParty(ctx, org.ID, "Sharma Cement Supply", models.PartyVendor)
	project := f.CreateProject(ctx, org.ID, "Lakeview Towers")

	store := New(db)
	if err := store.LinkProject(ctx, party.ID, project.ID); err != nil {
		t.Fatalf("LinkProject failed: %v", err)
	}
	// Linking twice must not duplicate.
	if err := store.LinkProject(ctx, party.ID, project.ID); err != nil {
		t.Fatalf("second LinkProject failed: %v", err)
	}

	got, err := store.GetByID(ctx, party.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ProjectIDs) != 1 || got.ProjectIDs[0] != project.ID {
		t.Errorf("project links: got %v", got.ProjectIDs)
	}

	if err := store.UnlinkProject(ctx, party.ID, project.ID); err != nil {
		t.Fatalf("UnlinkProject failed: %v", err)
	}
	got, err = store.GetByID(ctx, party.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ProjectIDs) != 0 {
		t.Errorf("links should be empty after unlink, got %v", got.ProjectIDs)
	}
}

func TestFind_TypeAndProjectFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	org := f.CreateOrganization(ctx, "Alpha Constructions")
	project := f.CreateProject(ctx, org.ID, "Lakeview Towers")

	store := New(db)
	vendor := f.CreateParty(ctx, org.ID, "Sharma Cement Supply", models.PartyVendor)
	f.CreateParty(ctx, org.ID, "Patel Labour Gang", models.PartyLabour)
	if err := store.LinkProject(ctx, vendor.ID, project.ID); err != nil {
		t.Fatalf("LinkProject failed: %v", err)
	}

	found, err := store.Find(ctx, ListOptions{OrganizationID: org.ID, Type: models.PartyVendor, Take: 10})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Sharma Cement Supply" {
		t.Errorf("type filter: got %+v", found)
	}

	found, err = store.Find(ctx, ListOptions{OrganizationID: org.ID, ProjectID: &project.ID, Take: 10})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != vendor.ID {
		t.Errorf("project filter: got %+v", found)
	}
}
