// internal/app/features/documents/download.go
package documents

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// handleDownload serves the document's bytes. Local storage is served
// directly; other backends get a short-lived signed URL redirect.
func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	doc, err := h.Documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !doc.HasFile() {
		return apierr.NotFound("document file")
	}

	filename := doc.FileName
	if filename == "" {
		filename = "download"
	}
	contentDisposition := "attachment; filename=\"" + filename + "\""

	// Replaced files must not be served from browser cache.
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	if localStorage, ok := h.Storage.(*storage.Local); ok {
		fullPath, err := localStorage.GetFullPath(doc.FilePath)
		if err != nil {
			h.Log.Error("error getting file path",
				zap.Error(err),
				zap.String("path", doc.FilePath))
			return apierr.New(apierr.KindInternal, "failed to locate file")
		}
		w.Header().Set("Content-Disposition", contentDisposition)
		http.ServeFile(w, r, fullPath)
		return nil
	}

	signedURL, err := h.Storage.PresignedURL(ctx, doc.FilePath, &storage.PresignOptions{
		Expires:            15 * time.Minute,
		ContentDisposition: contentDisposition,
	})
	if err != nil {
		h.Log.Error("error generating signed URL",
			zap.Error(err),
			zap.String("path", doc.FilePath))
		return apierr.New(apierr.KindInternal, "failed to generate download link")
	}
	http.Redirect(w, r, signedURL, http.StatusSeeOther)
	return nil
}

// handleDelete removes the metadata record and the stored bytes.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	doc, err := h.Documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.Documents.Delete(ctx, id); err != nil {
		return err
	}
	if doc.HasFile() {
		if err := h.Storage.Delete(ctx, doc.FilePath); err != nil {
			h.Log.Warn("failed to delete stored file",
				zap.String("path", doc.FilePath),
				zap.Error(err))
		}
	}
	respond.NoContent(w)
	return nil
}
