// internal/app/features/users/orgs.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/sitedesk/internal/app/store/queries/userorgs"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
)

// handleOrganizations returns the organizations the user belongs to with
// the role held in each, joined in a single aggregation.
func (h *Handler) handleOrganizations(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// A missing user is a 404, not an empty list.
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		return err
	}

	orgs, err := userorgs.ListUserOrgs(ctx, h.DB, id)
	if err != nil {
		return err
	}
	if orgs == nil {
		orgs = []userorgs.UserOrg{}
	}
	respond.OK(w, orgs)
	return nil
}
