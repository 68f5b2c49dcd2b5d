// internal/app/features/teammembers/routes.go
package teammembers

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all team-member routes under the path where the caller
// mounts it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "team member", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "team member", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "team member", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "team member", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "team member", h.handleDelete))

	return r
}
