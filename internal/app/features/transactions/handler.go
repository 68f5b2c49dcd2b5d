// internal/app/features/transactions/handler.go
package transactions

import (
	"net/http"

	partystore "github.com/dalemusser/sitedesk/internal/app/store/parties"
	transactionstore "github.com/dalemusser/sitedesk/internal/app/store/transactions"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for party Transactions. Every
// mutation also applies the signed balance delta to the party.
type Handler struct {
	DB           *mongo.Database
	Log          *zap.Logger
	Transactions *transactionstore.Store
	Parties      *partystore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Transactions: transactionstore.New(db),
		Parties:      partystore.New(db),
	}
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apierr.Invalid("invalid " + name)
	}
	return id, nil
}
