package mongodb

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsNotSupported reports whether err means the server cannot run
// multi-document transactions, as with a standalone mongod.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, no replica set, OperationNotSupportedInTransaction
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	has := func(s string) bool { return strings.Contains(msg, s) }
	switch {
	case has("transaction") && (has("replica set") || has("session")):
		return true
	case has("session") && has("not supported"):
		return true
	case has("illegal operation"):
		return true
	}
	return false
}

// pairWrite is a two-document mutation. first reports whether it changed
// anything; second only runs when it did. undoFirst reverts first when no
// transaction protects the pair.
type pairWrite struct {
	first     func(ctx context.Context) (bool, error)
	second    func(ctx context.Context) error
	undoFirst func(ctx context.Context) error
}

func (p pairWrite) apply(ctx context.Context, compensate bool, logger *logrus.Logger) (bool, error) {
	changed, err := p.first(ctx)
	if err != nil || !changed {
		return false, err
	}
	if err := p.second(ctx); err != nil {
		if compensate {
			if uerr := p.undoFirst(ctx); uerr != nil && logger != nil {
				logger.WithError(uerr).Error("compensating write failed; edge left asymmetric")
			}
		}
		return false, err
	}
	return true, nil
}

// runPair executes p inside a transaction and falls back to guarded
// sequential writes with compensation when the deployment has no
// transaction support.
func runPair(ctx context.Context, client *mongo.Client, p pairWrite, logger *logrus.Logger) (bool, error) {
	if client != nil {
		sess, err := client.StartSession()
		if err == nil {
			defer sess.EndSession(ctx)
			var changed bool
			_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
				c, err := p.apply(sc, false, logger)
				changed = c
				return nil, err
			})
			if err == nil || !IsNotSupported(err) {
				return changed, err
			}
		}
		if logger != nil {
			logger.WithError(err).Debug("transactions unavailable, using sequential writes")
		}
	}
	return p.apply(ctx, true, logger)
}
