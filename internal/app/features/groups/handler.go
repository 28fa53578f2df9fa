// internal/app/features/groups/handler.go
package groups

import (
	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature: the
// public per-group feed and the admin management pages.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a groups Handler. It is typically called from the
// bootstrap BuildHandler function.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		ErrLog: errLog,
		Log:    logger,
	}
}
