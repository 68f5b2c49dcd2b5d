// internal/app/features/parties/handler.go
package parties

import (
	"net/http"

	partystore "github.com/dalemusser/sitedesk/internal/app/store/parties"
	projectstore "github.com/dalemusser/sitedesk/internal/app/store/projects"
	transactionstore "github.com/dalemusser/sitedesk/internal/app/store/transactions"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for Parties.
type Handler struct {
	DB           *mongo.Database
	Log          *zap.Logger
	Parties      *partystore.Store
	Projects     *projectstore.Store
	Transactions *transactionstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Parties:      partystore.New(db),
		Projects:     projectstore.New(db),
		Transactions: transactionstore.New(db),
	}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid("invalid " + name)
	}
	return id, nil
}
