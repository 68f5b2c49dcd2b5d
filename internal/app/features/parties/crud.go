// internal/app/features/parties/crud.go
package parties

import (
	"context"
	"net/http"

	partystore "github.com/dalemusser/sitedesk/internal/app/store/parties"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createPartyReq struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
}

type updatePartyReq struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req createPartyReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		return apierr.Invalid("invalid organization_id")
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		return apierr.Invalid("name is required")
	}
	if !models.ValidPartyType(req.Type) {
		return apierr.Invalid("type must be one of vendor, labour, subcontractor")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Parties.Create(ctx, models.Party{
		OrganizationID: orgID,
		Name:           req.Name,
		Type:           req.Type,
	})
	if err != nil {
		return err
	}
	respond.Created(w, p)
	return nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) error {
	orgHex := query.Get(r, "org")
	if orgHex == "" {
		return apierr.Invalid("org query parameter is required")
	}
	orgID, err := primitive.ObjectIDFromHex(orgHex)
	if err != nil {
		return apierr.Invalid("invalid org query parameter")
	}
	if t := query.Get(r, "type"); t != "" && !models.ValidPartyType(t) {
		return apierr.Invalid("type must be one of vendor, labour, subcontractor")
	}
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	opts := partystore.ListOptions{
		OrganizationID: orgID,
		Type:           query.Get(r, "type"),
		Search:         params.Search,
		Skip:           params.Skip(),
		Take:           params.Take(),
	}
	if projHex := query.Get(r, "project"); projHex != "" {
		projID, err := primitive.ObjectIDFromHex(projHex)
		if err != nil {
			return apierr.Invalid("invalid project query parameter")
		}
		opts.ProjectID = &projID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	parties, err := h.Parties.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Parties.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if parties == nil {
		parties = []models.Party{}
	}
	respond.List(w, parties, p)
	return nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Parties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	respond.OK(w, p)
	return nil
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req updatePartyReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.Name != nil {
		name := normalize.Name(*req.Name)
		if name == "" {
			return apierr.Invalid("name must not be empty")
		}
		*req.Name = name
	}
	if req.Type != nil && !models.ValidPartyType(*req.Type) {
		return apierr.Invalid("type must be one of vendor, labour, subcontractor")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Parties.UpdateByID(ctx, id, partystore.Update{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		return err
	}
	respond.OK(w, p)
	return nil
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Parties.Delete(ctx, id); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}
