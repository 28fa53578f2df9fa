// internal/app/features/profile/handler.go
package profile

import (
	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves author profile pages and the follow/unfollow actions.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		ErrLog: errLog,
		Log:    logger,
	}
}
