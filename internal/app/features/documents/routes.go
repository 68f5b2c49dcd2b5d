// internal/app/features/documents/routes.go
package documents

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// ProjectRoutes are the document routes nested under /projects/{id}.
func ProjectRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", respond.Wrap(h.Log, "list", "document", h.handleList))
	r.Post("/", respond.Wrap(h.Log, "upload", "document", h.handleUpload))

	return r
}

// Routes are the document routes addressed by document ID.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}/download", respond.Wrap(h.Log, "download", "document", h.handleDownload))
	r.Delete("/{id}", respond.Wrap(h.Log, "delete", "document", h.handleDelete))

	return r
}
