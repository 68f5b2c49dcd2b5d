// internal/app/features/expenses/routes.go
package expenses

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all expense routes under the path where the caller mounts
// it. The per-project category summary lives under /projects.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "expense", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "expense", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "expense", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "expense", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "expense", h.handleDelete))

	return r
}
