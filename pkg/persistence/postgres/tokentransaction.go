package postgres // import "github.com/openscholar/contribution-processor/pkg/persistence/postgres"

import (
	"fmt"

	"github.com/openscholar/contribution-processor/pkg/model"
)

const (
	defaultTokenTransactionTableName = "token_transaction"
)

// CreateTokenTransactionTableQuery returns the query to create the
// token_transaction table
func CreateTokenTransactionTableQuery() string {
	return CreateTokenTransactionTableQueryString(defaultTokenTransactionTableName)
}

// CreateTokenTransactionTableQueryString returns the query to create this
// table. Event hash uniqueness is enforced by a partial index, see
// CreateTokenTransactionTableIndicesString; transfers carry no hash and
// must not collide with each other.
func CreateTokenTransactionTableQueryString(tableName string) string {
	queryString := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s(
			transaction_id TEXT PRIMARY KEY,
			from_id TEXT,
			to_id TEXT,
			amount BIGINT,
			reason TEXT,
			contribution_id TEXT,
			event_hash TEXT,
			proof TEXT,
			transfer_timestamp BIGINT
		);
	`, tableName)
	return queryString
}

// CreateTokenTransactionTableIndices returns the query to create indices
// for this table
func CreateTokenTransactionTableIndices() string {
	return CreateTokenTransactionTableIndicesString(defaultTokenTransactionTableName)
}

// CreateTokenTransactionTableIndicesString returns the query to create
// indices for this table. The partial unique index on event_hash keeps a
// logical credit event to at most one transaction while leaving hash-less
// rows unconstrained.
func CreateTokenTransactionTableIndicesString(tableName string) string {
	queryString := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_to_idx ON %s (to_id);
		CREATE INDEX IF NOT EXISTS %s_from_idx ON %s (from_id);
		CREATE UNIQUE INDEX IF NOT EXISTS %s_event_hash_idx ON %s (event_hash) WHERE event_hash <> '';
	`, tableName, tableName, tableName, tableName, tableName, tableName)
	return queryString
}

// NewTokenTransaction creates a new postgres TokenTransaction from a
// model.TokenTransaction
func NewTokenTransaction(transaction *model.TokenTransaction) *TokenTransaction {
	return &TokenTransaction{
		TransactionID:  transaction.ID(),
		FromID:         transaction.FromID(),
		ToID:           transaction.ToID(),
		Amount:         transaction.Amount(),
		Reason:         transaction.Reason().Name(),
		ContributionID: transaction.ContributionID(),
		EventHash:      transaction.EventHash(),
		Proof:          transaction.Proof(),
		TransferDateTs: transaction.TransferDateTs(),
	}
}

// TokenTransaction is the postgres definition of a model.TokenTransaction
type TokenTransaction struct {
	TransactionID string `db:"transaction_id"`

	FromID string `db:"from_id"`

	ToID string `db:"to_id"`

	Amount int64 `db:"amount"`

	Reason string `db:"reason"`

	ContributionID string `db:"contribution_id"`

	EventHash string `db:"event_hash"`

	Proof string `db:"proof"`

	TransferDateTs int64 `db:"transfer_timestamp"`
}

// DbToTokenTransactionData creates a model.TokenTransaction from a postgres
// TokenTransaction
func (t *TokenTransaction) DbToTokenTransactionData() (*model.TokenTransaction, error) {
	reason, ok := model.TxReasonFromName[t.Reason]
	if !ok {
		return nil, fmt.Errorf("Unknown transaction reason from db: %v", t.Reason)
	}
	return model.NewTokenTransaction(&model.TokenTransactionParams{
		ID:             t.TransactionID,
		FromID:         t.FromID,
		ToID:           t.ToID,
		Amount:         t.Amount,
		Reason:         reason,
		ContributionID: t.ContributionID,
		EventHash:      t.EventHash,
		Proof:          t.Proof,
		TransferDateTs: t.TransferDateTs,
	}), nil
}
