// internal/app/features/transactions/routes.go
package transactions

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all transaction routes under the path where the caller
// mounts it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "transaction", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "create", "transaction", h.handleCreate))
	r.Get("/{id}", respond.Wrap(h.Log, "get", "transaction", h.handleGet))
	r.Put("/{id}", respond.Wrap(h.Log, "update", "transaction", h.handleUpdate))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "transaction", h.handleDelete))

	return r
}
