// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all task routes under the path where the caller mounts it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "task", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "task", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "task", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "task", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "task", h.handleDelete))

	return r
}
