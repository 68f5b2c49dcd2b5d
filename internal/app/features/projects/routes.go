// internal/app/features/projects/routes.go
package projects

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all project routes under the path where the caller mounts
// it. Document sub-routes are mounted separately by bootstrap.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "project", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "project", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "project", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "project", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "project", h.handleDelete))
	r.Get("/{id}/expenses/summary", respond.Wrap(h.Log, "summarize", "expense", h.handleExpenseSummary))

	return r
}
