package rolestore

import (
	"testing"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/sitedesk/internal/testutil"
)

func TestCreateAndFind_OrgScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	orgA := f.CreateOrganization(ctx, "Alpha Constructions")
	orgB := f.CreateOrganization(ctx, "Beta Builders")

	store := New(db)
	for _, name := range []string{"Supervisor", "Engineer"} {
		if _, err := store.Create(ctx, models.Role{Name: name, OrganizationID: orgA.ID}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := store.Create(ctx, models.Role{Name: "Supervisor", OrganizationID: orgB.ID}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.Find(ctx, ListOptions{OrganizationID: orgA.ID, Take: 10})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("org A roles: got %d, want 2", len(found))
	}

	found, err = store.Find(ctx, ListOptions{OrganizationID: orgA.ID, Search: "super", Take: 10})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Supervisor" {
		t.Errorf("search: got %+v", found)
	}
}

func TestMemberCount_SpansMembershipsAndTeamMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	org := f.CreateOrganization(ctx, "Alpha Constructions")
	role := f.CreateRole(ctx, org.ID, "Supervisor")
	other := f.CreateRole(ctx, org.ID, "Engineer")

	u1 := f.CreateUser(ctx, "Ravi Kumar", "+911111111111")
	u2 := f.CreateUser(ctx, "Priya Sharma", "+912222222222")
	f.CreateMembership(ctx, u1.ID, org.ID, role.ID)
	f.CreateMembership(ctx, u2.ID, org.ID, other.ID)
	f.CreateTeamMember(ctx, org.ID, role.ID, "Site Crew Lead")

	store := New(db)
	n, err := store.MemberCount(ctx, role.ID)
	if err != nil {
		t.Fatalf("MemberCount failed: %v", err)
	}
	// One membership plus one team member hold the role.
	if n != 2 {
		t.Errorf("member count: got %d, want 2", n)
	}

	n, err = store.MemberCount(ctx, other.ID)
	if err != nil {
		t.Fatalf("MemberCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("other role count: got %d, want 1", n)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	org := f.CreateOrganization(ctx, "Alpha Constructions")
	role := f.CreateRole(ctx, org.ID, "Supervisor")

	store := New(db)
	if err := store.Delete(ctx, role.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, role.ID); apierr.KindOf(err) != apierr.KindNotFound {
		t.Error("deleted role should be gone")
	}
}
