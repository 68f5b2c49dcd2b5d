// internal/app/features/roles/crud_test.go
package roles

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dalemusser/sitedesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setup(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())
	return Routes(h), testutil.NewFixtures(t, db)
}

func TestDeleteRole_RefusedWhileHeld(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Brick & Beam")
	role := fx.CreateRole(ctx, org.ID, "Site Engineer")
	user := fx.CreateUser(ctx, "Ravi Kumar", "+911234567001")
	fx.CreateMembership(ctx, user.ID, org.ID, role.ID)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, fmt.Sprintf("/%s", role.ID.Hex())))
	rec.AssertStatus(t, http.StatusConflict)
	if _, code := rec.ErrorEnvelope(t); code != "conflict" {
		t.Errorf("error code: got %q, want %q", code, "conflict")
	}

	// The role is still fetchable after the refused delete.
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, fmt.Sprintf("/%s", role.ID.Hex())))
	rec.AssertStatus(t, http.StatusOK)
}

func TestDeleteRole_RefusedWhileAssignedToTeamMember(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Brick & Beam")
	role := fx.CreateRole(ctx, org.ID, "Foreman")
	fx.CreateTeamMember(ctx, org.ID, role.ID, "Suresh Patil")

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, fmt.Sprintf("/%s", role.ID.Hex())))
	rec.AssertStatus(t, http.StatusConflict)
}

func TestDeleteRole_UnheldRoleIsRemoved(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Brick & Beam")
	role := fx.CreateRole(ctx, org.ID, "Surveyor")

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, fmt.Sprintf("/%s", role.ID.Hex())))
	rec.AssertStatus(t, http.StatusNoContent)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, fmt.Sprintf("/%s", role.ID.Hex())))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestGetRole_ReportsMemberCount(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Brick & Beam")
	role := fx.CreateRole(ctx, org.ID, "Site Engineer")
	user := fx.CreateUser(ctx, "Ravi Kumar", "+911234567002")
	fx.CreateMembership(ctx, user.ID, org.ID, role.ID)
	fx.CreateTeamMember(ctx, org.ID, role.ID, "Anita Joshi")

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, fmt.Sprintf("/%s", role.ID.Hex())))
	rec.AssertStatus(t, http.StatusOK)

	var detail struct {
		ID          primitive.ObjectID `json:"id"`
		MemberCount int64              `json:"member_count"`
	}
	rec.SuccessData(t, &detail)
	if detail.ID != role.ID {
		t.Errorf("id: got %s, want %s", detail.ID.Hex(), role.ID.Hex())
	}
	if detail.MemberCount != 2 {
		t.Errorf("member_count: got %d, want 2", detail.MemberCount)
	}
}

func TestCreateRole_SanitizesDescription(t *testing.T) {
	router, _ := setup(t)

	org := primitive.NewObjectID()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"organization_id": org.Hex(),
		"name":            "  Site   Engineer ",
		"description":     "<script>alert(1)</script>Leads inspections",
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var role struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	rec.SuccessData(t, &role)
	if role.Name != "Site Engineer" {
		t.Errorf("name: got %q, want %q", role.Name, "Site Engineer")
	}
	if role.Description != "Leads inspections" {
		t.Errorf("description: got %q, want %q", role.Description, "Leads inspections")
	}
}
