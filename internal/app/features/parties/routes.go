// internal/app/features/parties/routes.go
package parties

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all party routes under the path where the caller mounts it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "party", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "party", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "party", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "party", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "party", h.handleDelete))

	r.Get("/{id}/transactions", respond.Wrap(h.Log, "list", "transaction", h.handleTransactions))
	r.Post("/{id}/projects/{projectID}", respond.Wrap(h.Log, "link", "party project", h.handleLinkProject))
	r.Delete("/{id}/projects/{projectID}", respond.Wrap(h.Log, "unlink", "party project", h.handleUnlinkProject))

	return r
}
