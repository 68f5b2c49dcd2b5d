// internal/app/features/stages/crud.go
package stages

import (
	"context"
	"net/http"

	stagestore "github.com/dalemusser/sitedesk/internal/app/store/stages"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createStageReq struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Order     int    `json:"order,omitempty"`
}

type updateStageReq struct {
	Name  *string `json:"name,omitempty"`
	Order *int    `json:"order,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req createStageReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return apierr.Invalid("invalid project_id")
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		return apierr.Invalid("name is required")
	}
	if req.Order < 0 {
		return apierr.Invalid("order must not be negative")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	st, err := h.Stages.Create(ctx, models.Stage{
		ProjectID: projectID,
		Name:      req.Name,
		Order:     req.Order,
	})
	if err != nil {
		return err
	}
	respond.Created(w, st)
	return nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) error {
	projHex := query.Get(r, "project")
	if projHex == "" {
		return apierr.Invalid("project query parameter is required")
	}
	projectID, err := primitive.ObjectIDFromHex(projHex)
	if err != nil {
		return apierr.Invalid("invalid project query parameter")
	}
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := stagestore.ListOptions{
		ProjectID: projectID,
		Search:    params.Search,
		Skip:      params.Skip(),
		Take:      params.Take(),
	}
	stages, err := h.Stages.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Stages.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if stages == nil {
		stages = []models.Stage{}
	}
	respond.List(w, stages, p)
	return nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Stages.GetByID(ctx, id)
	if err != nil {
		return err
	}
	respond.OK(w, st)
	return nil
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req updateStageReq
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
	if req.Order != nil && *req.Order < 0 {
		return apierr.Invalid("order must not be negative")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Stages.UpdateByID(ctx, id, stagestore.Update{
		Name:  req.Name,
		Order: req.Order,
	})
	if err != nil {
		return err
	}
	respond.OK(w, st)
	return nil
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Stages.Delete(ctx, id); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}

// handleStats returns the stage's derived task counts.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	stats, err := h.Stages.TaskStats(ctx, id)
	if err != nil {
		return err
	}
	respond.OK(w, stats)
	return nil
}
