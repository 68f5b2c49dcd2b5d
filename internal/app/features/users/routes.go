// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all user routes under the path where the caller mounts it.
// Typically: r.Mount("/users", users.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "user", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "user", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "user", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "user", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "user", h.handleDelete))
	r.Get("/{id}/organizations", respond.Wrap(h.Log, "list", "user organization", h.handleOrganizations))

	return r
}
