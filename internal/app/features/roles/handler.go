// internal/app/features/roles/handler.go
package roles

import (
	"net/http"

	rolestore "github.com/dalemusser/sitedesk/internal/app/store/roles"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for team Roles.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Roles *rolestore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Roles: rolestore.New(db),
	}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid("invalid " + name)
	}
	return id, nil
}
