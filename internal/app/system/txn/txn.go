// Package txn runs multi-collection writes inside a Mongo transaction when
// the deployment supports one, and falls back to plain sequential execution
// on standalone servers (which reject sessions/transactions).
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn atomically when possible.
//
// On replica sets the callback runs inside a session transaction, so a
// concurrent reader never observes a partially-applied mutation. On
// standalone deployments (local dev, CI) transactions are not available and
// fn runs directly; each individual write is still atomic.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Debug("mongo sessions unsupported; running without a transaction")
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("mongo transactions unsupported; running without a transaction")
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// sessions or multi-document transactions (standalone deployments).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// 20 IllegalOperation, 51 — transaction numbers require a replica
		// set member; 263 OperationNotSupportedInTransaction.
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
