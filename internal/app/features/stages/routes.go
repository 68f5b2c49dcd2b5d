// internal/app/features/stages/routes.go
package stages

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all stage routes under the path where the caller mounts it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "stage", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "stage", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "stage", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "stage", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "stage", h.handleDelete))
	r.Get("/{id}/stats", respond.Wrap(h.Log, "get", "stage stats", h.handleStats))

	return r
}
