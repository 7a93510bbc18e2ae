package model // import "github.com/openscholar/contribution-processor/pkg/model"

// ContributionCriteria contains the retrieval criteria for a Contributions
// query. All provided filters must match.
type ContributionCriteria struct {
	// AuthorID filters by the submitting author, empty for any
	AuthorID string

	// Tags filters to contributions carrying all the given tags
	Tags []string

	// Status filters by lifecycle status, nil for any
	Status *ContributionStatus
}

// ContributionPersister is the interface to store contributions
type ContributionPersister interface {
	// ContributionByID retrieves a contribution by id
	ContributionByID(contributionID string) (*Contribution, error)
	// ContributionsByCriteria retrieves contributions matching the criteria,
	// newest-first by creation time
	ContributionsByCriteria(criteria *ContributionCriteria) ([]*Contribution, error)
	// CreateContribution creates a new contribution
	CreateContribution(contribution *Contribution) error
	// UpdateContribution updates fields on an existing contribution
	UpdateContribution(contribution *Contribution, updatedFields []string) error
}

// ReviewPersister is the interface to store reviews
type ReviewPersister interface {
	// ReviewByID retrieves a review by id
	ReviewByID(reviewID string) (*Review, error)
	// ReviewByContributionAndReviewer retrieves the single review a reviewer
	// has made on a contribution
	ReviewByContributionAndReviewer(contributionID string, reviewerID string) (*Review, error)
	// ReviewsByContributionID retrieves the reviews on a contribution,
	// newest-first
	ReviewsByContributionID(contributionID string) ([]*Review, error)
	// CreateReview creates a new review
	CreateReview(review *Review) error
	// UpdateReview updates fields on an existing review
	UpdateReview(review *Review, updatedFields []string) error
}

// ReputationPersister is the interface to store reputation records
type ReputationPersister interface {
	// ReputationByIdentity retrieves the reputation record for an identity
	ReputationByIdentity(identityID string) (*ReputationRecord, error)
	// CreateReputation creates a new reputation record
	CreateReputation(record *ReputationRecord) error
	// UpdateReputation updates fields on an existing reputation record
	UpdateReputation(record *ReputationRecord, updatedFields []string) error
}

// TokenTransactionPersister is the interface to store the append-only token
// ledger
type TokenTransactionPersister interface {
	// TokenTransactionByEventHash retrieves the transaction recorded for a
	// logical credit event, if any
	TokenTransactionByEventHash(eventHash string) (*TokenTransaction, error)
	// TokenTransactionsByIdentity retrieves all transactions where the
	// identity is sender or recipient, newest-first
	TokenTransactionsByIdentity(identityID string) ([]*TokenTransaction, error)
	// TokenTransactions retrieves every transaction in the ledger,
	// newest-first
	TokenTransactions() ([]*TokenTransaction, error)
	// CreateTokenTransaction appends a new transaction to the ledger
	CreateTokenTransaction(transaction *TokenTransaction) error
}

// CronPersister is the interface to store reconciliation cron state
type CronPersister interface {
	// TimestampOfLastEventForCron returns the timestamp of the last
	// reconciliation run
	TimestampOfLastEventForCron() (int64, error)
	// UpdateTimestampForCron saves the timestamp of the latest run
	UpdateTimestampForCron(timestamp int64) error
}
