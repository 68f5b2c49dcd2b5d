// internal/app/features/verify/handler.go
package verify

import (
	"github.com/dalemusser/sitedesk/internal/app/store/phoneverify"
	"github.com/dalemusser/sitedesk/internal/app/system/sms"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for phone verification. Codes are
// generated and checked by the phoneverify store; delivery goes through
// the configured SMS sender.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Codes  *phoneverify.Store
	Sender sms.Sender
}

func NewHandler(db *mongo.Database, codes *phoneverify.Store, sender sms.Sender, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Codes:  codes,
		Sender: sender,
	}
}
