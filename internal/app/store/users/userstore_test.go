package userstore

import (
	"testing"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/sitedesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	created, err := store.Create(ctx, models.User{
		FullName: "  Ravi  Kumar ",
		Phone:    "+91 12345-67890",
		Email:    "Ravi@Example.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected generated id")
	}
	if created.FullName != "Ravi Kumar" {
		t.Errorf("full name not normalized: %q", created.FullName)
	}
	if created.Phone != "+911234567890" {
		t.Errorf("phone not normalized: %q", created.Phone)
	}
	if created.Status != models.StatusActive {
		t.Errorf("status should default to active, got %q", created.Status)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FullName != created.FullName {
		t.Errorf("got %q, want %q", got.FullName, created.FullName)
	}

	byPhone, err := store.GetByPhone(ctx, "+91 12345 67890")
	if err != nil {
		t.Fatalf("GetByPhone failed: %v", err)
	}
	if byPhone.ID != created.ID {
		t.Error("GetByPhone returned a different user")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := New(db).GetByID(ctx, primitive.NewObjectID())
	if apierr.KindOf(err) != apierr.KindNotFound {
		t.Errorf("kind: got %q, want %q", apierr.KindOf(err), apierr.KindNotFound)
	}
}

func TestFind_SearchAndStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	for _, u := range []models.User{
		{FullName: "Ravi Kumar", Phone: "+911111111111"},
		{FullName: "Priya Sharma", Phone: "+912222222222"},
		{FullName: "Ravindra Patel", Phone: "+913333333333", Status: models.StatusDisabled},
	} {
		if _, err := store.Create(ctx, u); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	found, err := store.Find(ctx, ListOptions{Search: "ravi", Take: 10})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("search 'ravi': got %d users, want 2", len(found))
	}

	// Search matches the phone too.
	found, err = store.Find(ctx, ListOptions{Search: "2222", Take: 10})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(found) != 1 || found[0].FullName != "Priya Sharma" {
		t.Errorf("phone search: got %+v", found)
	}

	disabled, err := store.Find(ctx, ListOptions{Status: models.StatusDisabled, Take: 10})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(disabled) != 1 || disabled[0].FullName != "Ravindra Patel" {
		t.Errorf("status filter: got %+v", disabled)
	}

	total, err := store.Count(ctx, ListOptions{Search: "ravi"})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 2 {
		t.Errorf("count: got %d, want 2", total)
	}
}

func TestListOptionsFilter_OmitsEmptyPhoneClause(t *testing.T) {
	or, ok := (ListOptions{Search: "abc"}).filter()["$or"].(bson.A)
	if !ok {
		t.Fatal("expected an $or clause for a search term")
	}
	if len(or) != 1 {
		t.Fatalf("got %d clauses, want only the folded-name clause: %v", len(or), or)
	}

	or, ok = (ListOptions{Search: "+91 22"}).filter()["$or"].(bson.A)
	if !ok {
		t.Fatal("expected an $or clause for a search term")
	}
	if len(or) != 2 {
		t.Fatalf("numeric search: got %d clauses, want name and phone: %v", len(or), or)
	}
}

func TestFind_NonNumericSearchDoesNotMatchEveryPhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	for _, u := range []models.User{
		{FullName: "Ravi Kumar", Phone: "+911111111111"},
		{FullName: "Priya Sharma", Phone: "+912222222222"},
	} {
		if _, err := store.Create(ctx, u); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	// "xyz" normalizes to no digits at all. The phone clause must be
	// omitted, not turned into an empty regex matching every user.
	found, err := store.Find(ctx, ListOptions{Search: "xyz", Take: 10})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("search 'xyz': got %d users, want 0", len(found))
	}
}

func TestUpdateByID_PartialFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	created, err := store.Create(ctx, models.User{FullName: "Ravi Kumar", Phone: "+911234567890"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	name := "Ravi K"
	updated, err := store.UpdateByID(ctx, created.ID, Update{FullName: &name})
	if err != nil {
		t.Fatalf("UpdateByID failed: %v", err)
	}
	if updated.FullName != "Ravi K" {
		t.Errorf("full name: got %q", updated.FullName)
	}
	if updated.Phone != created.Phone {
		t.Errorf("untouched field changed: %q", updated.Phone)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("updated_at should advance")
	}

	_, err = store.UpdateByID(ctx, primitive.NewObjectID(), Update{FullName: &name})
	if apierr.KindOf(err) != apierr.KindNotFound {
		t.Errorf("missing user update kind: got %q", apierr.KindOf(err))
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	created, err := store.Create(ctx, models.User{FullName: "Ravi Kumar", Phone: "+911234567890"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, created.ID); apierr.KindOf(err) != apierr.KindNotFound {
		t.Error("deleted user should be gone")
	}
	if err := store.Delete(ctx, created.ID); apierr.KindOf(err) != apierr.KindNotFound {
		t.Errorf("double delete kind: got %q, want not_found", apierr.KindOf(err))
	}
}
