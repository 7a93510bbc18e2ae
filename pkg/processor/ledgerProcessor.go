package processor // import "github.com/openscholar/contribution-processor/pkg/processor"

import (
	"fmt"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/persistence"
	"github.com/openscholar/contribution-processor/pkg/utils"
)

// NewLedgerProcessor is a convenience function to init a LedgerProcessor
func NewLedgerProcessor(transactionPersister model.TokenTransactionPersister) *LedgerProcessor {
	return &LedgerProcessor{
		transactionPersister: transactionPersister,
	}
}

// LedgerProcessor owns the append-only token transaction log. Balances are
// derived from the full history on every query; the log is the only stored
// state.
type LedgerProcessor struct {
	transactionPersister model.TokenTransactionPersister
}

// RecordTokensParams are the params for recording a token credit
type RecordTokensParams struct {
	// FromID is the identity debited, empty for platform credits
	FromID string

	// ToID is the identity credited
	ToID string

	Amount int64

	Reason model.TxReason

	// ContributionID relates the credit to a contribution, if any
	ContributionID string

	// EventHash keys the logical credit event. When set and a transaction
	// with the hash already exists, the existing transaction is returned
	// and nothing is appended.
	EventHash string
}

// RecordTokens appends a credit to the ledger
func (l *LedgerProcessor) RecordTokens(params *RecordTokensParams) (*model.TokenTransaction, error) {
	if params.ToID == "" {
		return nil, &model.ValidationError{Field: "toId", Message: "recipient identity required"}
	}
	if params.Amount <= 0 {
		return nil, &model.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("amount must be positive, got %v", params.Amount),
		}
	}

	if params.EventHash != "" {
		existing, err := l.transactionPersister.TokenTransactionByEventHash(params.EventHash)
		if err == nil {
			return existing, nil
		}
		if err != persistence.ErrPersisterNoResults {
			return nil, err
		}
	}

	transactionID, err := utils.NewUUID()
	if err != nil {
		return nil, err
	}
	proof, err := utils.NewProofToken()
	if err != nil {
		return nil, err
	}

	transaction := model.NewTokenTransaction(&model.TokenTransactionParams{
		ID:             transactionID,
		FromID:         params.FromID,
		ToID:           params.ToID,
		Amount:         params.Amount,
		Reason:         params.Reason,
		ContributionID: params.ContributionID,
		EventHash:      params.EventHash,
		Proof:          proof,
		TransferDateTs: utils.CurrentEpochSecsInInt64(),
	})
	err = l.transactionPersister.CreateTokenTransaction(transaction)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// Transfer moves tokens from one identity to another. The sender and
// recipient must differ and the sender's derived balance must cover the
// amount; both are checked before anything is appended.
func (l *LedgerProcessor) Transfer(fromID string, toID string, amount int64,
	reason model.TxReason, contributionID string) (*model.TokenTransaction, error) {
	if fromID == "" {
		return nil, &model.ValidationError{Field: "fromId", Message: "sender identity required"}
	}
	if fromID == toID {
		return nil, &model.SelfTransferError{IdentityID: fromID}
	}
	if amount <= 0 {
		return nil, &model.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("amount must be positive, got %v", amount),
		}
	}
	balance, err := l.Balance(fromID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, &model.InsufficientBalanceError{
			IdentityID: fromID,
			Balance:    balance,
			Amount:     amount,
		}
	}
	return l.RecordTokens(&RecordTokensParams{
		FromID:         fromID,
		ToID:           toID,
		Amount:         amount,
		Reason:         reason,
		ContributionID: contributionID,
	})
}

// Balance derives the identity's spendable balance from the transaction
// history: credits received minus amounts sent. O(n) over the identity's
// history per call.
func (l *LedgerProcessor) Balance(identityID string) (int64, error) {
	transactions, err := l.transactionPersister.TokenTransactionsByIdentity(identityID)
	if err != nil {
		if err == persistence.ErrPersisterNoResults {
			return 0, nil
		}
		return 0, err
	}
	var balance int64
	for _, transaction := range transactions {
		if transaction.ToID() == identityID {
			balance += transaction.Amount()
		}
		if transaction.FromID() == identityID {
			balance -= transaction.Amount()
		}
	}
	return balance, nil
}

// History returns all transactions where the identity is sender or
// recipient, newest-first
func (l *LedgerProcessor) History(identityID string) ([]*model.TokenTransaction, error) {
	transactions, err := l.transactionPersister.TokenTransactionsByIdentity(identityID)
	if err != nil {
		if err == persistence.ErrPersisterNoResults {
			return []*model.TokenTransaction{}, nil
		}
		return nil, err
	}
	return transactions, nil
}

func (l *LedgerProcessor) hasEventHash(eventHash string) (bool, error) {
	_, err := l.transactionPersister.TokenTransactionByEventHash(eventHash)
	if err == nil {
		return true, nil
	}
	if err == persistence.ErrPersisterNoResults {
		return false, nil
	}
	return false, err
}
