// internal/app/features/documents/handler.go
package documents

import (
	"net/http"

	documentstore "github.com/dalemusser/sitedesk/internal/app/store/documents"
	projectstore "github.com/dalemusser/sitedesk/internal/app/store/projects"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MaxUploadSize caps a single document upload.
const MaxUploadSize = 32 << 20 // 32 MiB

// Handler is the feature-level handler for project Documents. File bytes
// live in the storage provider; Mongo holds only the metadata.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Storage   storage.Store
	Documents *documentstore.Store
	Projects  *projectstore.Store
}

func NewHandler(db *mongo.Database, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Storage:   store,
		Documents: documentstore.New(db),
		Projects:  projectstore.New(db),
	}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid("invalid " + name)
	}
	return id, nil
}
