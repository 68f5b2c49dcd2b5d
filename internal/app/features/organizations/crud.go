// internal/app/features/organizations/crud.go
package organizations

import (
	"context"
	"net/http"

	organizationstore "github.com/dalemusser/sitedesk/internal/app/store/organizations"
	projectstore "github.com/dalemusser/sitedesk/internal/app/store/projects"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
)

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req createOrgReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.Create(ctx, models.Organization{
		Name:        req.Name,
		City:        req.City,
		State:       req.State,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		return err
	}
	respond.Created(w, org)
	return nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) error {
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := organizationstore.ListOptions{
		Search: params.Search,
		Status: query.Get(r, "status"),
		Skip:   params.Skip(),
		Take:   params.Take(),
	}
	orgs, err := h.Orgs.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Orgs.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	respond.List(w, orgs, p)
	return nil
}

// handleGet returns an organization with its derived member and project
// counts.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	memberCount, err := h.Memberships.CountByOrganization(ctx, id)
	if err != nil {
		return err
	}
	projectCount, err := h.Projects.Count(ctx, projectstore.ListOptions{OrganizationID: id})
	if err != nil {
		return err
	}

	respond.OK(w, orgDetail{
		Organization: org,
		MemberCount:  memberCount,
		ProjectCount: projectCount,
	})
	return nil
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req updateOrgReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.UpdateByID(ctx, id, organizationstore.Update{
		Name:        req.Name,
		City:        req.City,
		State:       req.State,
		ContactInfo: req.ContactInfo,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	respond.OK(w, org)
	return nil
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Orgs.Delete(ctx, id); err != nil {
		return err
	}
	// Memberships do not outlive their organization.
	_, _ = h.DB.Collection("org_memberships").DeleteMany(ctx, bson.M{"org_id": id})
	respond.NoContent(w)
	return nil
}
