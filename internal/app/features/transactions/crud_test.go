// internal/app/features/transactions/crud_test.go
package transactions

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dalemusser/sitedesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*Handler, http.Handler, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop())
	return h, Routes(h), testutil.NewFixtures(t, db)
}

func partyBalance(t *testing.T, h *Handler, id primitive.ObjectID) float64 {
	t.Helper()

	ctx, cancel := testutil.TestContext()
	defer cancel()

	party, err := h.Parties.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	return party.Balance
}

func TestCreateTransaction_AppliesBalanceDelta(t *testing.T) {
	h, router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Brick & Beam")
	party := fx.CreateParty(ctx, org.ID, "Steel Supplier", "supplier")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"party_id": party.ID.Hex(),
		"tab":      "expense",
		"title":    "Rebar delivery",
		"amount":   20000.0,
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	if got := partyBalance(t, h, party.ID); got != 20000 {
		t.Fatalf("balance after expense: got %v, want 20000", got)
	}

	req = testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"party_id": party.ID.Hex(),
		"tab":      "payment",
		"title":    "Advance payment",
		"amount":   5000.0,
	})
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	if got := partyBalance(t, h, party.ID); got != 15000 {
		t.Fatalf("balance after payment: got %v, want 15000", got)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	_, router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Brick & Beam")
	party := fx.CreateParty(ctx, org.ID, "Steel Supplier", "supplier")

	cases := []struct {
		name     string
		body     map[string]any
		wantCode string
		status   int
	}{
		{
			name:     "bad tab",
			body:     map[string]any{"party_id": party.ID.Hex(), "tab": "refund", "title": "x", "amount": 1.0},
			wantCode: "invalid",
			status:   http.StatusBadRequest,
		},
		{
			name:     "zero amount",
			body:     map[string]any{"party_id": party.ID.Hex(), "tab": "payment", "title": "x", "amount": 0.0},
			wantCode: "invalid",
			status:   http.StatusBadRequest,
		},
		{
			name:     "blank title",
			body:     map[string]any{"party_id": party.ID.Hex(), "tab": "payment", "title": "   ", "amount": 1.0},
			wantCode: "invalid",
			status:   http.StatusBadRequest,
		},
		{
			name:     "unknown party",
			body:     map[string]any{"party_id": primitive.NewObjectID().Hex(), "tab": "payment", "title": "x", "amount": 1.0},
			wantCode: "not_found",
			status:   http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/", tc.body)
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, req)
			rec.AssertStatus(t, tc.status)
			if _, code := rec.ErrorEnvelope(t); code != tc.wantCode {
				t.Errorf("error code: got %q, want %q", code, tc.wantCode)
			}
		})
	}
}

func TestUpdateTransaction_ReconcilesBalance(t *testing.T) {
	h, router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Brick & Beam")
	party := fx.CreateParty(ctx, org.ID, "Mason Crew", "labour")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"party_id": party.ID.Hex(),
		"tab":      "expense",
		"title":    "Daily wages",
		"amount":   1000.0,
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var created struct {
		ID primitive.ObjectID `json:"id"`
	}
	rec.SuccessData(t, &created)

	req = testutil.NewJSONRequest(t, http.MethodPut, fmt.Sprintf("/%s", created.ID.Hex()), map[string]any{
		"amount": 400.0,
	})
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	if got := partyBalance(t, h, party.ID); got != 400 {
		t.Fatalf("balance after amount change: got %v, want 400", got)
	}

	// Flipping the tab swings the delta to the other side of the ledger.
	req = testutil.NewJSONRequest(t, http.MethodPut, fmt.Sprintf("/%s", created.ID.Hex()), map[string]any{
		"tab": "payment",
	})
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	if got := partyBalance(t, h, party.ID); got != -400 {
		t.Fatalf("balance after tab flip: got %v, want -400", got)
	}
}

func TestDeleteTransaction_ReversesBalance(t *testing.T) {
	h, router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fx.CreateOrganization(ctx, "Brick & Beam")
	party := fx.CreateParty(ctx, org.ID, "Cement Depot", "supplier")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"party_id": party.ID.Hex(),
		"tab":      "expense",
		"title":    "Cement bags",
		"amount":   7500.0,
	})
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var created struct {
		ID primitive.ObjectID `json:"id"`
	}
	rec.SuccessData(t, &created)

	req = testutil.NewRequest(http.MethodDelete, fmt.Sprintf("/%s", created.ID.Hex()))
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusNoContent)

	if got := partyBalance(t, h, party.ID); got != 0 {
		t.Fatalf("balance after delete: got %v, want 0", got)
	}

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, fmt.Sprintf("/%s", created.ID.Hex())))
	rec.AssertStatus(t, http.StatusNotFound)
}
