// internal/app/features/organizations/members.go
package organizations

import (
	"context"
	"net/http"

	"github.com/dalemusser/sitedesk/internal/app/store/queries/orgmembers"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// handleListMembers returns an organization's members with user and role
// joined in.
func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Orgs.GetByID(ctx, id); err != nil {
		return err
	}

	members, err := orgmembers.ListOrgMembers(ctx, h.DB, id, params.Skip(), params.Take())
	if err != nil {
		return err
	}
	total, err := h.Memberships.CountByOrganization(ctx, id)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if members == nil {
		members = []orgmembers.OrgMember{}
	}
	respond.List(w, members, p)
	return nil
}

func (h *Handler) handleAddMember(w http.ResponseWriter, r *http.Request) error {
	orgID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req addMemberReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return apierr.Invalid("invalid user_id")
	}
	roleID, err := primitive.ObjectIDFromHex(req.RoleID)
	if err != nil {
		return apierr.Invalid("invalid role_id")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Memberships.Add(ctx, userID, orgID, roleID)
	if err != nil {
		return err
	}
	respond.Created(w, m)
	return nil
}

func (h *Handler) handleUpdateMember(w http.ResponseWriter, r *http.Request) error {
	orgID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	membershipID, err := pathID(r, "membershipID")
	if err != nil {
		return err
	}

	var req updateMemberReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	roleID, err := primitive.ObjectIDFromHex(req.RoleID)
	if err != nil {
		return apierr.Invalid("invalid role_id")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Memberships.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if m.OrgID != orgID {
		return apierr.NotFound("membership")
	}

	updated, err := h.Memberships.UpdateRole(ctx, membershipID, roleID)
	if err != nil {
		return err
	}
	respond.OK(w, updated)
	return nil
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) error {
	orgID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	membershipID, err := pathID(r, "membershipID")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Memberships.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if m.OrgID != orgID {
		return apierr.NotFound("membership")
	}

	if err := h.Memberships.Remove(ctx, membershipID); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}
