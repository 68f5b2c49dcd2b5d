// internal/app/features/stages/handler.go
package stages

import (
	"net/http"

	projectstore "github.com/dalemusser/sitedesk/internal/app/store/projects"
	stagestore "github.com/dalemusser/sitedesk/internal/app/store/stages"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for project Stages.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Stages   *stagestore.Store
	Projects *projectstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Stages:   stagestore.New(db),
		Projects: projectstore.New(db),
	}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid("invalid " + name)
	}
	return id, nil
}
