// internal/app/features/posts/handler.go
package posts

import (
	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the posts feature: the
// detail page, create/edit/delete, and commenting.
type Handler struct {
	DB     *mongo.Database
	Files  storage.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a posts Handler. Files is the storage provider for
// post images (local disk or S3, chosen in bootstrap).
func NewHandler(db *mongo.Database, files storage.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Files:  files,
		ErrLog: errLog,
		Log:    logger,
	}
}
