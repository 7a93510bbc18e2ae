// Package processor contains the components that own the contribution
// lifecycle, peer review aggregation, reputation scoring, and the token
// ledger.
package processor // import "github.com/openscholar/contribution-processor/pkg/processor"

import (
	"sync"

	log "github.com/golang/glog"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/persistence"
	"github.com/openscholar/contribution-processor/pkg/pubsub"
)

// Scoring amounts for the contribution event kinds. These drive both the
// reputation engine and the token ledger.
const (
	authorCreationRepPoints = 20
	authorCreationTokens    = 50

	collaboratorRepPoints = 10
	collaboratorTokens    = 20

	reviewerRepPoints = 10
	reviewerTokens    = 15

	upvoteRepPoints = 2
	upvoteTokens    = 2

	verifiedAuthorTokens   = 100
	verifiedReviewerTokens = 20

	credentialRepPoints = 50
)

const (
	// minReviewsForPeerReview is the review count at which a published
	// contribution becomes peer_reviewed
	minReviewsForPeerReview = 3

	// verifiedRatingThreshold is the minimum mean rating for a peer
	// reviewed contribution to become verified
	verifiedRatingThreshold = 4.0
)

// NewProcessorParams are the params to initialize the Processor
type NewProcessorParams struct {
	ContributionPersister     model.ContributionPersister
	ReviewPersister           model.ReviewPersister
	ReputationPersister       model.ReputationPersister
	TokenTransactionPersister model.TokenTransactionPersister
	IdentityResolver          model.IdentityResolver
	GooglePubSub              *pubsub.GooglePubSub
	GooglePubSubTopicName     string
	PreventDuplicateBadges    bool
}

// NewProcessor is a convenience function to init a Processor with its
// component processors wired together
func NewProcessor(params *NewProcessorParams) *Processor {
	ledger := NewLedgerProcessor(params.TokenTransactionPersister)
	reputation := NewReputationProcessor(params.ReputationPersister,
		params.PreventDuplicateBadges)
	contribution := NewContributionProcessor(&NewContributionProcessorParams{
		ContributionPersister: params.ContributionPersister,
		ReviewPersister:       params.ReviewPersister,
		Reputation:            reputation,
		Ledger:                ledger,
		IdentityResolver:      params.IdentityResolver,
	})
	review := NewReviewProcessor(&NewReviewProcessorParams{
		ReviewPersister:       params.ReviewPersister,
		ContributionPersister: params.ContributionPersister,
		Reputation:            reputation,
		Ledger:                ledger,
		Lifecycle:             contribution,
		IdentityResolver:      params.IdentityResolver,
	})
	return &Processor{
		contribution:          contribution,
		review:                review,
		reputation:            reputation,
		ledger:                ledger,
		googlePubSub:          params.GooglePubSub,
		googlePubSubTopicName: params.GooglePubSubTopicName,
	}
}

// Processor is the single serialization point for all state changing
// operations on the contribution, review, reputation, and ledger stores.
// A review submission mutates several stores in sequence; the mutex keeps
// those steps from interleaving with another logical operation.
type Processor struct {
	mu sync.Mutex

	contribution *ContributionProcessor
	review       *ReviewProcessor
	reputation   *ReputationProcessor
	ledger       *LedgerProcessor

	googlePubSub          *pubsub.GooglePubSub
	googlePubSubTopicName string
}

// CreateContribution creates a new published contribution and credits the
// author and any collaborators
func (p *Processor) CreateContribution(params *CreateContributionParams) (*model.Contribution, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	contribution, err := p.contribution.CreateContribution(params)
	if err != nil {
		return nil, err
	}
	p.propagate(propagationEventContributionCreated, contribution.ID(), contribution.AuthorID())
	return contribution, nil
}

// Contribution retrieves a contribution by id
func (p *Processor) Contribution(contributionID string) (*model.Contribution, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contribution.Contribution(contributionID)
}

// Contributions retrieves contributions matching the criteria, newest-first
func (p *Processor) Contributions(criteria *model.ContributionCriteria) ([]*model.Contribution, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contribution.Contributions(criteria)
}

// SubmitReview records a peer review, credits the reviewer, and advances
// the contribution lifecycle when thresholds are crossed
func (p *Processor) SubmitReview(params *SubmitReviewParams) (*model.Review, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	review, err := p.review.SubmitReview(params)
	if err != nil {
		return nil, err
	}
	p.propagate(propagationEventReviewSubmitted, params.ContributionID, params.ReviewerID)
	return review, nil
}

// VoteOnReview records or replaces a voter's vote on a review. Upvotes
// credit the review author.
func (p *Processor) VoteOnReview(reviewID string, voterID string, value int) (*model.Review, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	review, err := p.review.VoteOnReview(reviewID, voterID, value)
	if err != nil {
		return nil, err
	}
	p.propagate(propagationEventReviewVoted, review.ContributionID(), voterID)
	return review, nil
}

// ReviewsForContribution retrieves a contribution's reviews, newest-first
func (p *Processor) ReviewsForContribution(contributionID string) ([]*model.Review, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.review.ReviewsForContribution(contributionID)
}

// Reputation retrieves the reputation record for an identity. Returns an
// empty record for an identity with no scoring events.
func (p *Processor) Reputation(identityID string) (*model.ReputationRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reputation.Reputation(identityID)
}

// RecordVerification records a verified credential on an identity and
// credits the verification score
func (p *Processor) RecordVerification(identityID string, credentialType string,
	institution string) (*model.Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	credential, err := p.reputation.RecordVerification(identityID, credentialType, institution)
	if err != nil {
		return nil, err
	}
	p.propagate(propagationEventCredentialVerified, "", identityID)
	return credential, nil
}

// AwardBadge awards a named badge to an identity
func (p *Processor) AwardBadge(identityID string, badgeID string, name string,
	description string) (*model.Badge, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	badge, err := p.reputation.AwardBadge(identityID, badgeID, name, description)
	if err != nil {
		return nil, err
	}
	p.propagate(propagationEventBadgeAwarded, "", identityID)
	return badge, nil
}

// Balance returns the derived token balance for an identity
func (p *Processor) Balance(identityID string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.Balance(identityID)
}

// History returns the transactions involving an identity, newest-first
func (p *Processor) History(identityID string) ([]*model.TokenTransaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.History(identityID)
}

// TransferTokens moves tokens between two distinct identities, requiring
// sufficient sender balance
func (p *Processor) TransferTokens(fromID string, toID string, amount int64,
	reason model.TxReason, contributionID string) (*model.TokenTransaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	transaction, err := p.ledger.Transfer(fromID, toID, amount, reason, contributionID)
	if err != nil {
		return nil, err
	}
	p.propagate(propagationEventTokensTransferred, contributionID, fromID)
	return transaction, nil
}

// Reconcile re-evaluates every non-terminal contribution against the review
// thresholds and re-applies any missing transition or credit. Credits are
// keyed by event hash so a partially applied review submission converges on
// replay.
func (p *Processor) Reconcile() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for _, status := range []model.ContributionStatus{
		model.ContributionStatusPublished,
		model.ContributionStatusPeerReviewed,
	} {
		s := status
		contributions, err := p.contribution.Contributions(
			&model.ContributionCriteria{Status: &s})
		if err != nil {
			return err
		}
		for _, contribution := range contributions {
			err = p.contribution.advanceOnReview(contribution)
			if err != nil {
				log.Errorf("Error reconciling contribution %v: err: %v",
					contribution.ID(), err)
				lastErr = err
			}
		}
	}
	return lastErr
}

// creditEvent is one identity credit produced by a scoring event: a
// reputation mutation paired with a ledger entry, keyed by the hash of the
// logical event that produced it.
type creditEvent struct {
	identityID     string
	repAmount      int
	category       model.ScoreCategory
	field          string
	tokenAmount    int64
	reason         model.TxReason
	contributionID string
	fromID         string
	eventHash      string
}

// applyCreditEvent applies a credit once per logical event. The ledger row
// doubles as the applied marker: if a transaction with the event hash
// already exists the whole credit is a no-op, so threshold replays do not
// double-credit.
func applyCreditEvent(reputation *ReputationProcessor, ledger *LedgerProcessor,
	event *creditEvent) error {
	applied, err := ledger.hasEventHash(event.eventHash)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}
	_, err = ledger.RecordTokens(&RecordTokensParams{
		FromID:         event.fromID,
		ToID:           event.identityID,
		Amount:         event.tokenAmount,
		Reason:         event.reason,
		ContributionID: event.contributionID,
		EventHash:      event.eventHash,
	})
	if err != nil {
		return err
	}
	if event.repAmount == 0 {
		// Token-only credit, ex. the verification bonuses
		return nil
	}
	_, err = reputation.Credit(event.identityID, event.repAmount, event.category,
		event.field)
	return err
}

func isNoResultsErr(err error) bool {
	return err == persistence.ErrPersisterNoResults
}
