package userorgs

import (
	"testing"

	"github.com/dalemusser/sitedesk/internal/testutil"
)

func TestListUserOrgs_JoinsAndCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Ravi Kumar", "+911111111111")
	colleague := fx.CreateUser(ctx, "Priya Sharma", "+912222222222")

	alpha := fx.CreateOrganization(ctx, "Alpha Builders")
	zenith := fx.CreateOrganization(ctx, "Zenith Constructions")

	engineer := fx.CreateRole(ctx, alpha.ID, "Site Engineer")
	foreman := fx.CreateRole(ctx, zenith.ID, "Foreman")

	fx.CreateMembership(ctx, user.ID, alpha.ID, engineer.ID)
	fx.CreateMembership(ctx, user.ID, zenith.ID, foreman.ID)
	fx.CreateMembership(ctx, colleague.ID, alpha.ID, engineer.ID)

	fx.CreateProject(ctx, alpha.ID, "Riverside Villas")
	fx.CreateProject(ctx, alpha.ID, "Hilltop Towers")

	rows, err := ListUserOrgs(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("ListUserOrgs failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// Ordered by organization name.
	if rows[0].Organization.ID != alpha.ID || rows[1].Organization.ID != zenith.ID {
		t.Errorf("order: got %q, %q", rows[0].Organization.Name, rows[1].Organization.Name)
	}
	if rows[0].Role.ID != engineer.ID {
		t.Errorf("role: got %q, want %q", rows[0].Role.Name, "Site Engineer")
	}

	if rows[0].MemberCount != 2 {
		t.Errorf("alpha member_count: got %d, want 2", rows[0].MemberCount)
	}
	if rows[0].ProjectCount != 2 {
		t.Errorf("alpha project_count: got %d, want 2", rows[0].ProjectCount)
	}
	if rows[1].MemberCount != 1 {
		t.Errorf("zenith member_count: got %d, want 1", rows[1].MemberCount)
	}
	if rows[1].ProjectCount != 0 {
		t.Errorf("zenith project_count: got %d, want 0", rows[1].ProjectCount)
	}
}

func TestListUserOrgs_NoMemberships(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Ravi Kumar", "+911111111111")

	rows, err := ListUserOrgs(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("ListUserOrgs failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}
