// internal/app/features/expenses/handler.go
package expenses

import (
	"net/http"

	expensestore "github.com/dalemusser/sitedesk/internal/app/store/expenses"
	projectstore "github.com/dalemusser/sitedesk/internal/app/store/projects"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for project Expenses.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Expenses *expensestore.Store
	Projects *projectstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Expenses: expensestore.New(db),
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
