// internal/app/features/verify/routes.go
package verify

import (
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the verification routes under the path where the caller
// mounts it. Typically: r.Mount("/verify", verify.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/send", respond.Wrap(h.Log, "send", "verification", h.handleSend))
	r.Post("/check", respond.Wrap(h.Log, "check", "verification", h.handleCheck))

	return r
}
