// internal/app/features/organizations/handler.go
package organizations

import (
	"net/http"

	membershipstore "github.com/dalemusser/sitedesk/internal/app/store/memberships"
	organizationstore "github.com/dalemusser/sitedesk/internal/app/store/organizations"
	projectstore "github.com/dalemusser/sitedesk/internal/app/store/projects"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Organizations and their
// membership sub-resource.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Orgs        *organizationstore.Store
	Memberships *membershipstore.Store
	Projects    *projectstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Orgs:        organizationstore.New(db),
		Memberships: membershipstore.New(db),
		Projects:    projectstore.New(db),
	}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid("invalid " + name)
	}
	return id, nil
}
