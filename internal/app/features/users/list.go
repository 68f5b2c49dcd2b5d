// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/sitedesk/internal/app/store/users"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) error {
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := userstore.ListOptions{
		Search: params.Search,
		Status: query.Get(r, "status"),
		Skip:   params.Skip(),
		Take:   params.Take(),
	}
	users, err := h.Users.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Users.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if users == nil {
		users = []models.User{}
	}
	respond.List(w, users, p)
	return nil
}
