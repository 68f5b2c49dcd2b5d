// internal/app/features/projects/crud.go
package projects

import (
	"context"
	"net/http"

	expensestore "github.com/dalemusser/sitedesk/internal/app/store/expenses"
	projectstore "github.com/dalemusser/sitedesk/internal/app/store/projects"
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

type createProjectReq struct {
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Location       string `json:"location,omitempty"`
}

type updateProjectReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req createProjectReq
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

	p, err := h.Projects.Create(ctx, models.Project{
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    htmlsanitize.Sanitize(req.Description),
		Location:       req.Location,
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
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := projectstore.ListOptions{
		OrganizationID: orgID,
		Status:         query.Get(r, "status"),
		Search:         params.Search,
		Skip:           params.Skip(),
		Take:           params.Take(),
	}
	projects, err := h.Projects.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Projects.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	respond.List(w, projects, p)
	return nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Projects.GetByID(ctx, id)
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

	var req updateProjectReq
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
		*req.Description = htmlsanitize.Sanitize(*req.Description)
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return apierr.Invalid("status must be one of active, archived, disabled")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Projects.UpdateByID(ctx, id, projectstore.Update{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Status:      req.Status,
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

	if err := h.Projects.Delete(ctx, id); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}

// handleExpenseSummary returns the project's expenses grouped by category
// with totals.
func (h *Handler) handleExpenseSummary(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, id); err != nil {
		return err
	}
	rows, err := h.Expenses.SummaryByCategory(ctx, id)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []expensestore.CategorySummary{}
	}
	respond.OK(w, rows)
	return nil
}
