// Package txn runs multi-document Mongo transactions with graceful
// degradation. Standalone mongod instances and some DocumentDB
// deployments reject transactions; callers detect that with
// IsNotSupported and fall back to sequential writes.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Run executes fn inside a multi-document transaction. All collection
// operations inside fn must use the provided session context or they
// escape the transaction.
func Run(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone mongod, DocumentDB, very old
// replica sets). Detection covers the known server error codes plus the
// message shapes drivers surface for session/transaction rejection.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if ce, ok := err.(mongo.CommandError); ok {
		// 20: IllegalOperation variant "Transaction numbers are only
		// allowed on a replica set member"; 51: IllegalOperation;
		// 263: OperationNotSupportedInTransaction.
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
		return hasUnsupportedKeywords(ce.Message)
	}

	return hasUnsupportedKeywords(err.Error())
}

func hasUnsupportedKeywords(msg string) bool {
	s := strings.ToLower(msg)
	switch {
	case strings.Contains(s, "transaction") && strings.Contains(s, "replica set"):
		return true
	case strings.Contains(s, "session") && strings.Contains(s, "not supported"):
		return true
	case strings.Contains(s, "transaction") && strings.Contains(s, "session"):
		return true
	case strings.Contains(s, "transaction") && strings.Contains(s, "illegal operation"):
		return true
	}
	return false
}
