// internal/app/features/teammembers/crud.go
package teammembers

import (
	"context"
	"net/http"

	teammemberstore "github.com/dalemusser/sitedesk/internal/app/store/teammembers"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createTeamMemberReq struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Location       string `json:"location,omitempty"`
	RoleID         string `json:"role_id"`
}

type updateTeamMemberReq struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Location *string `json:"location,omitempty"`
	RoleID   *string `json:"role_id,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req createTeamMemberReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrganizationID)
	if err != nil {
		return apierr.Invalid("invalid organization_id")
	}
	roleID, err := primitive.ObjectIDFromHex(req.RoleID)
	if err != nil {
		return apierr.Invalid("invalid role_id")
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		return apierr.Invalid("name is required")
	}
	if req.Phone != "" {
		req.Phone = normalize.Phone(req.Phone)
		if !normalize.ValidPhone(req.Phone) {
			return apierr.Invalid("phone must be a valid phone number")
		}
	}
	if req.Email != "" && !validate.SimpleEmailValid(req.Email) {
		return apierr.Invalid("email must be a valid email address")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tm, err := h.Members.Create(ctx, models.TeamMember{
		OrganizationID: orgID,
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Location:       req.Location,
		RoleID:         roleID,
	})
	if err != nil {
		return err
	}
	respond.Created(w, tm)
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

	opts := teammemberstore.ListOptions{
		OrganizationID: orgID,
		Search:         params.Search,
		Skip:           params.Skip(),
		Take:           params.Take(),
	}
	if roleHex := query.Get(r, "role"); roleHex != "" {
		roleID, err := primitive.ObjectIDFromHex(roleHex)
		if err != nil {
			return apierr.Invalid("invalid role query parameter")
		}
		opts.RoleID = &roleID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Members.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Members.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if members == nil {
		members = []models.TeamMember{}
	}
	respond.List(w, members, p)
	return nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tm, err := h.Members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	respond.OK(w, tm)
	return nil
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req updateTeamMemberReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}

	upd := teammemberstore.Update{
		Location: req.Location,
	}
	if req.Name != nil {
		name := normalize.Name(*req.Name)
		if name == "" {
			return apierr.Invalid("name must not be empty")
		}
		upd.Name = &name
	}
	if req.Phone != nil {
		phone := normalize.Phone(*req.Phone)
		if phone != "" && !normalize.ValidPhone(phone) {
			return apierr.Invalid("phone must be a valid phone number")
		}
		upd.Phone = &phone
	}
	if req.Email != nil {
		if *req.Email != "" && !validate.SimpleEmailValid(*req.Email) {
			return apierr.Invalid("email must be a valid email address")
		}
		upd.Email = req.Email
	}
	if req.RoleID != nil {
		roleID, err := primitive.ObjectIDFromHex(*req.RoleID)
		if err != nil {
			return apierr.Invalid("invalid role_id")
		}
		upd.RoleID = &roleID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tm, err := h.Members.UpdateByID(ctx, id, upd)
	if err != nil {
		return err
	}
	respond.OK(w, tm)
	return nil
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Members.Delete(ctx, id); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}
