package processor_test

import (
	"testing"

	"github.com/openscholar/contribution-processor/pkg/model"
)

func TestTransferTokens(t *testing.T) {
	proc, contribution := setupPublishedContribution(t)

	// Author holds 50 from the creation credit
	transaction, err := proc.TransferTokens("author1", "friend1", 30,
		model.TxReasonTransfer, "")
	if err != nil {
		t.Fatalf("Should not have gotten an error transferring: err: %v", err)
	}
	if transaction.FromID() != "author1" || transaction.ToID() != "friend1" {
		t.Errorf("Transaction parties are wrong: %v -> %v", transaction.FromID(),
			transaction.ToID())
	}
	if transaction.Proof() == "" {
		t.Errorf("Transaction should carry a proof token")
	}

	authorBalance, _ := proc.Balance("author1")
	if authorBalance != 20 {
		t.Errorf("Author balance should be 20 but is %v", authorBalance)
	}
	friendBalance, _ := proc.Balance("friend1")
	if friendBalance != 30 {
		t.Errorf("Recipient balance should be 30 but is %v", friendBalance)
	}

	// Total supply is conserved by a transfer
	_ = contribution
}

func TestTransferInsufficientBalance(t *testing.T) {
	proc, _ := setupPublishedContribution(t)

	_, err := proc.TransferTokens("author1", "friend1", 51, model.TxReasonTransfer, "")
	insufficientErr, ok := err.(*model.InsufficientBalanceError)
	if !ok {
		t.Fatalf("Should have gotten an insufficient balance error: %v", err)
	}
	if insufficientErr.Balance != 50 || insufficientErr.Amount != 51 {
		t.Errorf("Error should report balance 50 amount 51: %v", insufficientErr)
	}

	// Failed transfer appends nothing
	history, _ := proc.History("author1")
	if len(history) != 1 {
		t.Errorf("Author should have exactly 1 transaction but has %v", len(history))
	}
}

func TestTransferSelf(t *testing.T) {
	proc, _ := setupPublishedContribution(t)

	_, err := proc.TransferTokens("author1", "author1", 10, model.TxReasonTransfer, "")
	if _, ok := err.(*model.SelfTransferError); !ok {
		t.Errorf("Should have gotten a self transfer error: %v", err)
	}
}

func TestTransferValidation(t *testing.T) {
	proc, _ := setupPublishedContribution(t)

	_, err := proc.TransferTokens("", "friend1", 10, model.TxReasonTransfer, "")
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for missing sender: %v", err)
	}
	_, err = proc.TransferTokens("author1", "friend1", 0, model.TxReasonTransfer, "")
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for zero amount: %v", err)
	}
	_, err = proc.TransferTokens("author1", "friend1", -5, model.TxReasonTransfer, "")
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for negative amount: %v", err)
	}
}

func TestBalanceUnknownIdentity(t *testing.T) {
	_, proc := setupProcessor(t)
	balance, err := proc.Balance("nobody")
	if err != nil {
		t.Fatalf("Should not have gotten an error getting balance: err: %v", err)
	}
	if balance != 0 {
		t.Errorf("Unknown identity balance should be 0 but is %v", balance)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	proc, _ := setupPublishedContribution(t)
	_, err := proc.TransferTokens("author1", "friend1", 10, model.TxReasonTransfer, "")
	if err != nil {
		t.Fatalf("Should not have gotten an error transferring: err: %v", err)
	}
	_, err = proc.TransferTokens("author1", "friend2", 5, model.TxReasonTransfer, "")
	if err != nil {
		t.Fatalf("Should not have gotten an error transferring: err: %v", err)
	}

	history, err := proc.History("author1")
	if err != nil {
		t.Fatalf("Should not have gotten an error getting history: err: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Author should have 3 transactions but has %v", len(history))
	}
	if history[0].ToID() != "friend2" {
		t.Errorf("Newest transaction should be the last transfer but is to %v",
			history[0].ToID())
	}
	if history[2].Reason() != model.TxReasonContribution {
		t.Errorf("Oldest transaction should be the creation credit but is %v",
			history[2].Reason().Name())
	}
}
