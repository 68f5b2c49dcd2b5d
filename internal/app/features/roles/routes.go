// internal/app/features/roles/routes.go
package roles

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all role routes under the path where the caller mounts it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "role", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "role", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "role", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "role", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "role", h.handleDelete))

	return r
}
