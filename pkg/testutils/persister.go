// Package testutils contains utilities used for testing
package testutils // import "github.com/openscholar/contribution-processor/pkg/testutils"

import (
	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/persistence"
)

// TestPersister implements the persister interfaces in memory for tests.
// The zero value is usable.
type TestPersister struct {
	Contributions     map[string]*model.Contribution
	contributionOrder []string
	Reviews           map[string]*model.Review
	reviewOrder       []string
	Reputations       map[string]*model.ReputationRecord
	Transactions      map[string]*model.TokenTransaction
	transactionOrder  []string
	Timestamp         int64
}

// ContributionByID returns the contribution for an id from the in
// memory map
func (t *TestPersister) ContributionByID(contributionID string) (*model.Contribution, error) {
	contribution, ok := t.Contributions[contributionID]
	if !ok {
		return nil, persistence.ErrPersisterNoResults
	}
	return contribution, nil
}

// ContributionsByCriteria returns the contributions matching the criteria,
// newest-first
func (t *TestPersister) ContributionsByCriteria(criteria *model.ContributionCriteria) ([]*model.Contribution, error) {
	contributions := []*model.Contribution{}
	for i := len(t.contributionOrder) - 1; i >= 0; i-- {
		contribution := t.Contributions[t.contributionOrder[i]]
		if matchesCriteria(contribution, criteria) {
			contributions = append(contributions, contribution)
		}
	}
	return contributions, nil
}

// CreateContribution adds a contribution to the in memory map
func (t *TestPersister) CreateContribution(contribution *model.Contribution) error {
	if t.Contributions == nil {
		t.Contributions = map[string]*model.Contribution{}
	}
	t.Contributions[contribution.ID()] = contribution
	t.contributionOrder = append(t.contributionOrder, contribution.ID())
	return nil
}

// UpdateContribution updates a contribution in the in memory map
func (t *TestPersister) UpdateContribution(contribution *model.Contribution,
	updatedFields []string) error {
	if t.Contributions == nil {
		t.Contributions = map[string]*model.Contribution{}
	}
	t.Contributions[contribution.ID()] = contribution
	return nil
}

// ReviewByID returns the review for an id from the in memory map
func (t *TestPersister) ReviewByID(reviewID string) (*model.Review, error) {
	review, ok := t.Reviews[reviewID]
	if !ok {
		return nil, persistence.ErrPersisterNoResults
	}
	return review, nil
}

// ReviewByContributionAndReviewer returns the review a reviewer made on a
// contribution from the in memory map
func (t *TestPersister) ReviewByContributionAndReviewer(contributionID string,
	reviewerID string) (*model.Review, error) {
	for _, review := range t.Reviews {
		if review.ContributionID() == contributionID && review.ReviewerID() == reviewerID {
			return review, nil
		}
	}
	return nil, persistence.ErrPersisterNoResults
}

// ReviewsByContributionID returns the reviews on a contribution,
// newest-first
func (t *TestPersister) ReviewsByContributionID(contributionID string) ([]*model.Review, error) {
	reviews := []*model.Review{}
	for i := len(t.reviewOrder) - 1; i >= 0; i-- {
		review := t.Reviews[t.reviewOrder[i]]
		if review.ContributionID() == contributionID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

// CreateReview adds a review to the in memory map
func (t *TestPersister) CreateReview(review *model.Review) error {
	if t.Reviews == nil {
		t.Reviews = map[string]*model.Review{}
	}
	t.Reviews[review.ID()] = review
	t.reviewOrder = append(t.reviewOrder, review.ID())
	return nil
}

// UpdateReview updates a review in the in memory map
func (t *TestPersister) UpdateReview(review *model.Review, updatedFields []string) error {
	if t.Reviews == nil {
		t.Reviews = map[string]*model.Review{}
	}
	t.Reviews[review.ID()] = review
	return nil
}

// ReputationByIdentity returns the reputation record for an identity from
// the in memory map
func (t *TestPersister) ReputationByIdentity(identityID string) (*model.ReputationRecord, error) {
	record, ok := t.Reputations[identityID]
	if !ok {
		return nil, persistence.ErrPersisterNoResults
	}
	return record, nil
}

// CreateReputation adds a reputation record to the in memory map
func (t *TestPersister) CreateReputation(record *model.ReputationRecord) error {
	if t.Reputations == nil {
		t.Reputations = map[string]*model.ReputationRecord{}
	}
	t.Reputations[record.IdentityID()] = record
	return nil
}

// UpdateReputation updates a reputation record in the in memory map
func (t *TestPersister) UpdateReputation(record *model.ReputationRecord,
	updatedFields []string) error {
	if t.Reputations == nil {
		t.Reputations = map[string]*model.ReputationRecord{}
	}
	t.Reputations[record.IdentityID()] = record
	return nil
}

// TokenTransactionByEventHash returns the transaction for an event hash
// from the in memory map
func (t *TestPersister) TokenTransactionByEventHash(eventHash string) (*model.TokenTransaction, error) {
	for _, transaction := range t.Transactions {
		if transaction.EventHash() == eventHash {
			return transaction, nil
		}
	}
	return nil, persistence.ErrPersisterNoResults
}

// TokenTransactionsByIdentity returns all the transactions where the
// identity is sender or recipient, newest-first
func (t *TestPersister) TokenTransactionsByIdentity(identityID string) ([]*model.TokenTransaction, error) {
	transactions := []*model.TokenTransaction{}
	for i := len(t.transactionOrder) - 1; i >= 0; i-- {
		transaction := t.Transactions[t.transactionOrder[i]]
		if transaction.ToID() == identityID || transaction.FromID() == identityID {
			transactions = append(transactions, transaction)
		}
	}
	return transactions, nil
}

// TokenTransactions returns every transaction in the ledger, newest-first
func (t *TestPersister) TokenTransactions() ([]*model.TokenTransaction, error) {
	transactions := make([]*model.TokenTransaction, len(t.transactionOrder))
	for i := len(t.transactionOrder) - 1; i >= 0; i-- {
		transactions[len(t.transactionOrder)-1-i] = t.Transactions[t.transactionOrder[i]]
	}
	return transactions, nil
}

// CreateTokenTransaction adds a transaction to the in memory map
func (t *TestPersister) CreateTokenTransaction(transaction *model.TokenTransaction) error {
	if t.Transactions == nil {
		t.Transactions = map[string]*model.TokenTransaction{}
	}
	t.Transactions[transaction.ID()] = transaction
	t.transactionOrder = append(t.transactionOrder, transaction.ID())
	return nil
}

// TimestampOfLastEventForCron returns the timestamp of the last run
func (t *TestPersister) TimestampOfLastEventForCron() (int64, error) {
	return t.Timestamp, nil
}

// UpdateTimestampForCron saves the timestamp of the latest run
func (t *TestPersister) UpdateTimestampForCron(timestamp int64) error {
	t.Timestamp = timestamp
	return nil
}

func matchesCriteria(contribution *model.Contribution, criteria *model.ContributionCriteria) bool {
	if criteria == nil {
		return true
	}
	if criteria.AuthorID != "" && contribution.AuthorID() != criteria.AuthorID {
		return false
	}
	if criteria.Status != nil && contribution.Status() != *criteria.Status {
		return false
	}
	for _, tag := range criteria.Tags {
		found := false
		for _, contributionTag := range contribution.Tags() {
			if contributionTag == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
