// internal/app/features/roles/crud.go
package roles

import (
	"context"
	"net/http"

	rolestore "github.com/dalemusser/sitedesk/internal/app/store/roles"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/htmlsanitize"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRoleReq struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
}

type updateRoleReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// roleDetail is the role payload with its derived member count.
type roleDetail struct {
	models.Role
	MemberCount int64 `json:"member_count"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req createRoleReq
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Roles.Create(ctx, models.Role{
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    htmlsanitize.Plain(req.Description),
	})
	if err != nil {
		return err
	}
	respond.Created(w, role)
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
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := rolestore.ListOptions{
		OrganizationID: orgID,
		Search:         params.Search,
		Skip:           params.Skip(),
		Take:           params.Take(),
	}
	roles, err := h.Roles.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Roles.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if roles == nil {
		roles = []models.Role{}
	}
	respond.List(w, roles, p)
	return nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := h.Roles.MemberCount(ctx, id)
	if err != nil {
		return err
	}
	respond.OK(w, roleDetail{Role: role, MemberCount: count})
	return nil
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req updateRoleReq
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
	if req.Description != nil {
		*req.Description = htmlsanitize.Plain(*req.Description)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Roles.UpdateByID(ctx, id, rolestore.Update{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	respond.OK(w, role)
	return nil
}

// handleDelete refuses to delete a role anyone still holds. The member
// count check runs before any store delete.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Roles.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := h.Roles.MemberCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apierr.Conflict("role has members and cannot be deleted")
	}

	if err := h.Roles.Delete(ctx, id); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}
