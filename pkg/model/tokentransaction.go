package model // import "github.com/openscholar/contribution-processor/pkg/model"

// TxReason specifies why a token transaction was recorded
type TxReason int

const (
	// TxReasonInvalid is an invalid reason value
	TxReasonInvalid TxReason = iota

	// TxReasonContribution is tokens credited for submitting a contribution
	// or for a contribution reaching verified status
	TxReasonContribution

	// TxReasonReview is tokens credited for peer review activity
	TxReasonReview

	// TxReasonUpvote is tokens credited for an upvote received on a review
	TxReasonUpvote

	// TxReasonTransfer is a direct identity-to-identity transfer
	TxReasonTransfer

	// TxReasonAdjustment is a manual ledger adjustment
	TxReasonAdjustment
)

var txReasonNames = map[TxReason]string{
	TxReasonContribution: "contribution",
	TxReasonReview:       "review",
	TxReasonUpvote:       "upvote",
	TxReasonTransfer:     "transfer",
	TxReasonAdjustment:   "adjustment",
}

// TxReasonFromName maps valid reason names to the reasons above
var TxReasonFromName = map[string]TxReason{
	"contribution": TxReasonContribution,
	"review":       TxReasonReview,
	"upvote":       TxReasonUpvote,
	"transfer":     TxReasonTransfer,
	"adjustment":   TxReasonAdjustment,
}

// Name returns the string name for the reason
func (r TxReason) Name() string {
	return txReasonNames[r]
}

// TokenTransactionParams are the params to initialize a new TokenTransaction
type TokenTransactionParams struct {
	ID             string
	FromID         string
	ToID           string
	Amount         int64
	Reason         TxReason
	ContributionID string
	EventHash      string
	Proof          string
	TransferDateTs int64
}

// NewTokenTransaction is a convenience method to init a TokenTransaction
func NewTokenTransaction(params *TokenTransactionParams) *TokenTransaction {
	return &TokenTransaction{
		id:             params.ID,
		fromID:         params.FromID,
		toID:           params.ToID,
		amount:         params.Amount,
		reason:         params.Reason,
		contributionID: params.ContributionID,
		eventHash:      params.EventHash,
		proof:          params.Proof,
		transferDateTs: params.TransferDateTs,
	}
}

// TokenTransaction is a single immutable entry in the append-only token
// ledger. Transactions are never edited or removed; an identity's balance
// is derived from the full transaction history.
type TokenTransaction struct {
	id string

	// The identity the tokens were debited from. Empty for platform credits.
	fromID string

	// The identity the tokens were credited to
	toID string

	amount int64

	reason TxReason

	// The contribution this transaction relates to, if any
	contributionID string

	// Deterministic key of the logical credit event that produced this
	// transaction. Unique in the ledger so replays are no-ops.
	eventHash string

	proof string

	transferDateTs int64
}

// ID returns the id of the transaction
func (t *TokenTransaction) ID() string {
	return t.id
}

// FromID is the identity the tokens were debited from, empty for platform
// credits
func (t *TokenTransaction) FromID() string {
	return t.fromID
}

// ToID is the identity the tokens were credited to
func (t *TokenTransaction) ToID() string {
	return t.toID
}

// Amount is the number of tokens moved. Always positive.
func (t *TokenTransaction) Amount() int64 {
	return t.amount
}

// Reason returns the reason the transaction was recorded
func (t *TokenTransaction) Reason() TxReason {
	return t.reason
}

// ContributionID returns the related contribution id, empty if none
func (t *TokenTransaction) ContributionID() string {
	return t.contributionID
}

// EventHash returns the deterministic key of the logical credit event
func (t *TokenTransaction) EventHash() string {
	return t.eventHash
}

// Proof returns the proof token generated for this transaction
func (t *TokenTransaction) Proof() string {
	return t.proof
}

// TransferDateTs returns the timestamp the transaction was recorded
func (t *TokenTransaction) TransferDateTs() int64 {
	return t.transferDateTs
}
