// internal/app/features/documents/upload.go
package documents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	documentstore "github.com/dalemusser/sitedesk/internal/app/store/documents"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// handleUpload stores the multipart "file" part and records its metadata
// on the project.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) error {
	projectID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		return apierr.Invalid("multipart form required, file too large or malformed")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return apierr.Invalid("file form field is required")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		return err
	}

	path, err := h.uploadFile(ctx, projectID, header.Filename, file, contentType)
	if err != nil {
		h.Log.Error("file upload failed", zap.Error(err))
		return apierr.New(apierr.KindInternal, "failed to store file")
	}

	doc, err := h.Documents.Create(ctx, models.Document{
		ProjectID:   projectID,
		FileName:    header.Filename,
		FilePath:    path,
		Size:        header.Size,
		ContentType: contentType,
	})
	if err != nil {
		// Orphaned bytes are worse than a failed request; clean up.
		if delErr := h.Storage.Delete(ctx, path); delErr != nil {
			h.Log.Warn("failed to clean up uploaded file after create error",
				zap.String("path", path),
				zap.Error(delErr))
		}
		return err
	}
	respond.Created(w, doc)
	return nil
}

// uploadFile stores the bytes under a unique path:
// documents/<project>/YYYY/MM/<uuid>-<filename>
func (h *Handler) uploadFile(ctx context.Context, projectID primitive.ObjectID, filename string, reader io.Reader, contentType string) (string, error) {
	now := time.Now().UTC()
	dir := fmt.Sprintf("documents/%s/%04d/%02d", projectID.Hex(), now.Year(), now.Month())
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	path := filepath.ToSlash(filepath.Join(dir, name))

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.Storage.Put(ctx, path, reader, opts); err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	return path, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) error {
	projectID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	params, err := paging.ParseParams(r)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		return err
	}

	opts := documentstore.ListOptions{
		ProjectID: projectID,
		Skip:      params.Skip(),
		Take:      params.Take(),
	}
	docs, err := h.Documents.Find(ctx, opts)
	if err != nil {
		return err
	}
	total, err := h.Documents.Count(ctx, opts)
	if err != nil {
		return err
	}

	p, err := paging.Build(params.Page, params.Limit, total)
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	respond.List(w, docs, p)
	return nil
}

// sanitizeFilename keeps only filesystem-safe characters and bounds the
// length, preserving the extension.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
