// internal/app/features/parties/transactions.go
package parties

import (
	"context"
	"net/http"

	transactionstore "github.com/dalemusser/sitedesk/internal/app/store/transactions"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// handleTransactions lists a party's ledger entries, newest first, with
// an optional ?tab= filter.
func (h *Handler) handleTransactions(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	if tab := query.Get(r, "tab"); tab != "" && !models.ValidTab(tab) {
		return apierr.Invalid("tab must be payment or expense")
	}
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Parties.GetByID(ctx, id); err != nil {
		return err
	}

	opts := transactionstore.ListOptions{
		PartyID: &id,
		Tab:     query.Get(r, "tab"),
		Search:  params.Search,
		Skip:    params.Skip(),
		Take:    params.Take(),
	}
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

// handleLinkProject records a project-credit link on the party.
func (h *Handler) handleLinkProject(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	projectID, err := pathID(r, "projectID")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	if err := h.Parties.LinkProject(ctx, id, projectID); err != nil {
		return err
	}

	p, err := h.Parties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	respond.OK(w, p)
	return nil
}

func (h *Handler) handleUnlinkProject(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	projectID, err := pathID(r, "projectID")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Parties.UnlinkProject(ctx, id, projectID); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}
