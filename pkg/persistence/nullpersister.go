package persistence // import "github.com/openscholar/contribution-processor/pkg/persistence"

import (
	"github.com/openscholar/contribution-processor/pkg/model"
)

// NullPersister is a persister that does not save any values and always
// returns empty or no results. Used if there is no real persister given.
type NullPersister struct{}

// ContributionByID returns no results
func (np *NullPersister) ContributionByID(contributionID string) (*model.Contribution, error) {
	return nil, ErrPersisterNoResults
}

// ContributionsByCriteria returns an empty slice of contributions
func (np *NullPersister) ContributionsByCriteria(criteria *model.ContributionCriteria) ([]*model.Contribution, error) {
	return []*model.Contribution{}, nil
}

// CreateContribution does nothing
func (np *NullPersister) CreateContribution(contribution *model.Contribution) error {
	return nil
}

// UpdateContribution does nothing
func (np *NullPersister) UpdateContribution(contribution *model.Contribution,
	updatedFields []string) error {
	return nil
}

// ReviewByID returns no results
func (np *NullPersister) ReviewByID(reviewID string) (*model.Review, error) {
	return nil, ErrPersisterNoResults
}

// ReviewByContributionAndReviewer returns no results
func (np *NullPersister) ReviewByContributionAndReviewer(contributionID string,
	reviewerID string) (*model.Review, error) {
	return nil, ErrPersisterNoResults
}

// ReviewsByContributionID returns an empty slice of reviews
func (np *NullPersister) ReviewsByContributionID(contributionID string) ([]*model.Review, error) {
	return []*model.Review{}, nil
}

// CreateReview does nothing
func (np *NullPersister) CreateReview(review *model.Review) error {
	return nil
}

// UpdateReview does nothing
func (np *NullPersister) UpdateReview(review *model.Review, updatedFields []string) error {
	return nil
}

// ReputationByIdentity returns no results
func (np *NullPersister) ReputationByIdentity(identityID string) (*model.ReputationRecord, error) {
	return nil, ErrPersisterNoResults
}

// CreateReputation does nothing
func (np *NullPersister) CreateReputation(record *model.ReputationRecord) error {
	return nil
}

// UpdateReputation does nothing
func (np *NullPersister) UpdateReputation(record *model.ReputationRecord,
	updatedFields []string) error {
	return nil
}

// TokenTransactionByEventHash returns no results
func (np *NullPersister) TokenTransactionByEventHash(eventHash string) (*model.TokenTransaction, error) {
	return nil, ErrPersisterNoResults
}

// TokenTransactionsByIdentity returns an empty slice of transactions
func (np *NullPersister) TokenTransactionsByIdentity(identityID string) ([]*model.TokenTransaction, error) {
	return []*model.TokenTransaction{}, nil
}

// TokenTransactions returns an empty slice of transactions
func (np *NullPersister) TokenTransactions() ([]*model.TokenTransaction, error) {
	return []*model.TokenTransaction{}, nil
}

// CreateTokenTransaction does nothing
func (np *NullPersister) CreateTokenTransaction(transaction *model.TokenTransaction) error {
	return nil
}

// TimestampOfLastEventForCron returns 0
func (np *NullPersister) TimestampOfLastEventForCron() (int64, error) {
	return int64(0), nil
}

// UpdateTimestampForCron does nothing
func (np *NullPersister) UpdateTimestampForCron(timestamp int64) error {
	return nil
}
