// internal/app/features/transactions/crud.go
package transactions

import (
	"context"
	"net/http"
	"time"

	transactionstore "github.com/dalemusser/sitedesk/internal/app/store/transactions"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createTransactionReq struct {
	PartyID string     `json:"party_id"`
	Tab     string     `json:"tab"`
	Title   string     `json:"title"`
	Amount  float64    `json:"amount"`
	Date    *time.Time `json:"date,omitempty"`
}

type updateTransactionReq struct {
	Title  *string    `json:"title,omitempty"`
	Amount *float64   `json:"amount,omitempty"`
	Date   *time.Time `json:"date,omitempty"`
	Tab    *string    `json:"tab,omitempty"`
}

// handleCreate inserts a ledger entry and applies its balance delta to
// the party.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req createTransactionReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	partyID, err := primitive.ObjectIDFromHex(req.PartyID)
	if err != nil {
		return apierr.Invalid("invalid party_id")
	}
	if !models.ValidTab(req.Tab) {
		return apierr.Invalid("tab must be payment or expense")
	}
	req.Title = normalize.Name(req.Title)
	if req.Title == "" {
		return apierr.Invalid("title is required")
	}
	if req.Amount <= 0 {
		return apierr.Invalid("amount must be greater than zero")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Parties.GetByID(ctx, partyID); err != nil {
		return err
	}

	t := models.Transaction{
		PartyID: partyID,
		Tab:     req.Tab,
		Title:   req.Title,
		Amount:  req.Amount,
	}
	if req.Date != nil {
		t.Date = *req.Date
	}
	created, err := h.Transactions.Create(ctx, t)
	if err != nil {
		return err
	}
	if err := h.Parties.ApplyBalanceDelta(ctx, partyID, created.BalanceDelta()); err != nil {
		return err
	}

	respond.Created(w, created)
	return nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) error {
	if tab := query.Get(r, "tab"); tab != "" && !models.ValidTab(tab) {
		return apierr.Invalid("tab must be payment or expense")
	}
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	opts := transactionstore.ListOptions{
		Tab:    query.Get(r, "tab"),
		Search: params.Search,
		Skip:   params.Skip(),
		Take:   params.Take(),
	}
	if partyHex := query.Get(r, "party"); partyHex != "" {
		partyID, err := primitive.ObjectIDFromHex(partyHex)
		if err != nil {
			return apierr.Invalid("invalid party query parameter")
		}
		opts.PartyID = &partyID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	txns, err := h.Transactions.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Transactions.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	respond.List(w, txns, p)
	return nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Transactions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	respond.OK(w, t)
	return nil
}

// handleUpdate applies a partial update and reconciles the party balance
// with the difference between the old and new balance deltas.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req updateTransactionReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.Title != nil {
		title := normalize.Name(*req.Title)
		if title == "" {
			return apierr.Invalid("title must not be empty")
		}
		*req.Title = title
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return apierr.Invalid("amount must be greater than zero")
	}
	if req.Tab != nil && !models.ValidTab(*req.Tab) {
		return apierr.Invalid("tab must be payment or expense")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	before, err := h.Transactions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	after, err := h.Transactions.UpdateByID(ctx, id, transactionstore.Update{
		Title:  req.Title,
		Amount: req.Amount,
		Date:   req.Date,
		Tab:    req.Tab,
	})
	if err != nil {
		return err
	}

	if delta := after.BalanceDelta() - before.BalanceDelta(); delta != 0 {
		if err := h.Parties.ApplyBalanceDelta(ctx, after.PartyID, delta); err != nil {
			return err
		}
	}
	respond.OK(w, after)
	return nil
}

// handleDelete removes a ledger entry and reverses its balance delta.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, err := h.Transactions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.Transactions.Delete(ctx, id); err != nil {
		return err
	}
	if err := h.Parties.ApplyBalanceDelta(ctx, t.PartyID, -t.BalanceDelta()); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}
