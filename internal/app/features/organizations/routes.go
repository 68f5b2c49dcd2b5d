// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all organization routes under the path where the caller
// mounts it. Typically: r.Mount("/organizations", organizations.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "organization", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "organization", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "organization", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "organization", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "organization", h.handleDelete))

	r.Get("/{id}/members", respond.Wrap(h.Log, "list", "membership", h.handleListMembers))
	r.Post("/{id}/members", respond.Wrap(h.Log, "create", "membership", h.handleAddMember))
	r.Put("/{id}/members/{membershipID}", respond.Wrap(h.Log, "update", "membership", h.handleUpdateMember))
	r.Delete("/{id}/members/{membershipID}", respond.Wrap(h.Log, "delete", "membership", h.handleRemoveMember))

	return r
}
