// internal/app/features/expenses/crud.go
package expenses

import (
	"context"
	"net/http"
	"time"

	expensestore "github.com/dalemusser/sitedesk/internal/app/store/expenses"
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

type createExpenseReq struct {
	ProjectID string     `json:"project_id"`
	Category  string     `json:"category"`
	Title     string     `json:"title"`
	Amount    float64    `json:"amount"`
	Date      *time.Time `json:"date,omitempty"`
}

type updateExpenseReq struct {
	Category *string    `json:"category,omitempty"`
	Title    *string    `json:"title,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req createExpenseReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		return apierr.Invalid("invalid project_id")
	}
	req.Category = htmlsanitize.Plain(normalize.Name(req.Category))
	if req.Category == "" {
		return apierr.Invalid("category is required")
	}
	req.Title = normalize.Name(req.Title)
	if req.Title == "" {
		return apierr.Invalid("title is required")
	}
	if req.Amount <= 0 {
		return apierr.Invalid("amount must be greater than zero")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		return err
	}

	e := models.Expense{
		ProjectID: projectID,
		Category:  req.Category,
		Title:     req.Title,
		Amount:    req.Amount,
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	created, err := h.Expenses.Create(ctx, e)
	if err != nil {
		return err
	}
	respond.Created(w, created)
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

	opts := expensestore.ListOptions{
		ProjectID: projectID,
		Category:  query.Get(r, "category"),
		Search:    params.Search,
		Skip:      params.Skip(),
		Take:      params.Take(),
	}
	expenses, err := h.Expenses.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Expenses.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	respond.List(w, expenses, p)
	return nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Expenses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	respond.OK(w, e)
	return nil
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var req updateExpenseReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.Category != nil {
		cat := htmlsanitize.Plain(normalize.Name(*req.Category))
		if cat == "" {
			return apierr.Invalid("category must not be empty")
		}
		*req.Category = cat
	}
	if req.Title != nil {
		title := normalize.Name(*req.Title)
		if title == "" {
			return apierr.Invalid("title must not be empty")
		}
		*req.Title = title
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return apierr.Invalid("amount must be greater than zero")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Expenses.UpdateByID(ctx, id, expensestore.Update{
		Category: req.Category,
		Title:    req.Title,
		Amount:   req.Amount,
		Date:     req.Date,
	})
	if err != nil {
		return err
	}
	respond.OK(w, e)
	return nil
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Expenses.Delete(ctx, id); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}
