// internal/app/features/tasks/crud.go
package tasks

import (
	"context"
	"net/http"

	taskstore "github.com/dalemusser/sitedesk/internal/app/store/tasks"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createTaskReq struct {
	StageID    string `json:"stage_id"`
	Title      string `json:"title"`
	Status     string `json:"status,omitempty"`
	AssigneeID string `json:"assignee_id,omitempty"`
}

type updateTaskReq struct {
	Title      *string `json:"title,omitempty"`
	Status     *string `json:"status,omitempty"`
	StageID    *string `json:"stage_id,omitempty"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req createTaskReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	stageID, err := primitive.ObjectIDFromHex(req.StageID)
	if err != nil {
		return apierr.Invalid("invalid stage_id")
	}
	req.Title = normalize.Name(req.Title)
	if req.Title == "" {
		return apierr.Invalid("title is required")
	}
	if req.Status != "" && !models.ValidTaskStatus(req.Status) {
		return apierr.Invalid("status must be one of todo, in_progress, done")
	}

	t := models.Task{
		StageID: stageID,
		Title:   req.Title,
		Status:  req.Status,
	}
	if req.AssigneeID != "" {
		assigneeID, err := primitive.ObjectIDFromHex(req.AssigneeID)
		if err != nil {
			return apierr.Invalid("invalid assignee_id")
		}
		t.AssigneeID = &assigneeID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Tasks.Create(ctx, t)
	if err != nil {
		return err
	}
	respond.Created(w, created)
	return nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) error {
	if s := query.Get(r, "status"); s != "" && !models.ValidTaskStatus(s) {
		return apierr.Invalid("status must be one of todo, in_progress, done")
	}
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	opts := taskstore.ListOptions{
		Status: query.Get(r, "status"),
		Search: params.Search,
		Skip:   params.Skip(),
		Take:   params.Take(),
	}
	if stageHex := query.Get(r, "stage"); stageHex != "" {
		stageID, err := primitive.ObjectIDFromHex(stageHex)
		if err != nil {
			return apierr.Invalid("invalid stage query parameter")
		}
		opts.StageID = &stageID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Tasks.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	respond.List(w, tasks, p)
	return nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	respond.OK(w, t)
	return nil
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req updateTaskReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}

	upd := taskstore.Update{}
	if req.Title != nil {
		title := normalize.Name(*req.Title)
		if title == "" {
			return apierr.Invalid("title must not be empty")
		}
		upd.Title = &title
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			return apierr.Invalid("status must be one of todo, in_progress, done")
		}
		upd.Status = req.Status
	}
	if req.StageID != nil {
		stageID, err := primitive.ObjectIDFromHex(*req.StageID)
		if err != nil {
			return apierr.Invalid("invalid stage_id")
		}
		upd.StageID = &stageID
	}
	if req.AssigneeID != nil {
		assigneeID, err := primitive.ObjectIDFromHex(*req.AssigneeID)
		if err != nil {
			return apierr.Invalid("invalid assignee_id")
		}
		upd.AssigneeID = &assigneeID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	t, err := h.Tasks.UpdateByID(ctx, id, upd)
	if err != nil {
		return err
	}
	respond.OK(w, t)
	return nil
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Tasks.Delete(ctx, id); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}
