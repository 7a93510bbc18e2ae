package processor // import "github.com/openscholar/contribution-processor/pkg/processor"

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/utils"
)

// Field names on the review model passed to the persister on updates
const (
	votesFieldName = "Votes"
)

// Event hash prefixes keying the logical credit events of review activity
const (
	eventReviewSubmitted = "review-submitted"
	eventReviewUpvoted   = "review-upvoted"
)

// Vote values accepted by VoteOnReview
const (
	VoteValueUp   = 1
	VoteValueDown = -1
)

// NewReviewProcessorParams are the params to initialize a ReviewProcessor
type NewReviewProcessorParams struct {
	ReviewPersister       model.ReviewPersister
	ContributionPersister model.ContributionPersister
	Reputation            *ReputationProcessor
	Ledger                *LedgerProcessor
	Lifecycle             *ContributionProcessor
	IdentityResolver      model.IdentityResolver
}

// NewReviewProcessor is a convenience function to init a ReviewProcessor
func NewReviewProcessor(params *NewReviewProcessorParams) *ReviewProcessor {
	return &ReviewProcessor{
		reviewPersister:       params.ReviewPersister,
		contributionPersister: params.ContributionPersister,
		reputation:            params.Reputation,
		ledger:                params.Ledger,
		lifecycle:             params.Lifecycle,
		identityResolver:      params.IdentityResolver,
	}
}

// ReviewProcessor owns the peer reviews and their votes, and drives the
// contribution lifecycle thresholds after each recorded review.
type ReviewProcessor struct {
	reviewPersister       model.ReviewPersister
	contributionPersister model.ContributionPersister
	reputation            *ReputationProcessor
	ledger                *LedgerProcessor
	lifecycle             *ContributionProcessor
	identityResolver      model.IdentityResolver
}

// SubmitReviewParams are the params for a review submission
type SubmitReviewParams struct {
	ContributionID string
	ReviewerID     string
	ReviewerName   string
	Content        string
	Rating         int
}

// SubmitReview validates and records a peer review, credits the reviewer,
// and invokes the lifecycle threshold check
func (r *ReviewProcessor) SubmitReview(params *SubmitReviewParams) (*model.Review, error) {
	if params.ReviewerID == "" {
		return nil, &model.ValidationError{Field: "reviewerId", Message: "reviewer identity required"}
	}
	if params.Rating < model.MinReviewRating || params.Rating > model.MaxReviewRating {
		return nil, &model.ValidationError{
			Field: "rating",
			Message: fmt.Sprintf("rating must be an integer in [%v,%v], got %v",
				model.MinReviewRating, model.MaxReviewRating, params.Rating),
		}
	}

	contribution, err := r.contributionPersister.ContributionByID(params.ContributionID)
	if err != nil {
		if isNoResultsErr(err) {
			return nil, &model.NotFoundError{Entity: "contribution", ID: params.ContributionID}
		}
		return nil, err
	}

	_, err = r.reviewPersister.ReviewByContributionAndReviewer(params.ContributionID,
		params.ReviewerID)
	if err == nil {
		return nil, &model.DuplicateReviewError{
			ContributionID: params.ContributionID,
			ReviewerID:     params.ReviewerID,
		}
	}
	if !isNoResultsErr(err) {
		return nil, err
	}

	reviewID, err := utils.NewUUID()
	if err != nil {
		return nil, err
	}
	reviewerName := params.ReviewerName
	if reviewerName == "" {
		reviewerName = resolveDisplayName(r.identityResolver, params.ReviewerID)
	}
	review := model.NewReview(&model.ReviewParams{
		ID:             reviewID,
		ContributionID: params.ContributionID,
		ReviewerID:     params.ReviewerID,
		ReviewerName:   reviewerName,
		Content:        params.Content,
		Rating:         params.Rating,
		Votes:          []*model.Vote{},
		CreatedDateTs:  utils.CurrentEpochSecsInInt64(),
	})
	err = r.reviewPersister.CreateReview(review)
	if err != nil {
		return nil, err
	}

	contribution.AddReviewID(reviewID)
	contribution.SetLastUpdatedDateTs(utils.CurrentEpochSecsInInt64())
	err = r.contributionPersister.UpdateContribution(contribution,
		[]string{reviewIDsFieldName, lastUpdatedFieldName})
	if err != nil {
		return nil, err
	}

	err = applyCreditEvent(r.reputation, r.ledger, &creditEvent{
		identityID:     params.ReviewerID,
		repAmount:      reviewerRepPoints,
		category:       model.ScoreCategoryReview,
		field:          contribution.PrimaryTag(),
		tokenAmount:    reviewerTokens,
		reason:         model.TxReasonReview,
		contributionID: params.ContributionID,
		eventHash: utils.HashOfParts(eventReviewSubmitted, params.ContributionID,
			params.ReviewerID),
	})
	if err != nil {
		return nil, err
	}

	err = r.lifecycle.advanceOnReview(contribution)
	if err != nil {
		return nil, err
	}

	log.Infof("Recorded review %v on contribution %v by reviewer %v\n",
		reviewID, params.ContributionID, params.ReviewerID)
	return review, nil
}

// VoteOnReview records a voter's vote on a review, overwriting the voter's
// previous vote if any. An upvote credits the review author; a downvote is
// recorded with no credit.
func (r *ReviewProcessor) VoteOnReview(reviewID string, voterID string, value int) (*model.Review, error) {
	if voterID == "" {
		return nil, &model.ValidationError{Field: "voterId", Message: "voter identity required"}
	}
	if value != VoteValueUp && value != VoteValueDown {
		return nil, &model.ValidationError{
			Field:   "value",
			Message: fmt.Sprintf("vote value must be +1 or -1, got %v", value),
		}
	}

	review, err := r.reviewPersister.ReviewByID(reviewID)
	if err != nil {
		if isNoResultsErr(err) {
			return nil, &model.NotFoundError{Entity: "review", ID: reviewID}
		}
		return nil, err
	}

	review.SetVote(model.NewVote(&model.VoteParams{
		VoterID: voterID,
		Value:   value,
		VotedTs: utils.CurrentEpochSecsInInt64(),
	}))
	err = r.reviewPersister.UpdateReview(review, []string{votesFieldName})
	if err != nil {
		return nil, err
	}

	if value == VoteValueUp {
		// Credited at most once per (review, voter) pair regardless of
		// how often the voter flips their vote
		err = applyCreditEvent(r.reputation, r.ledger, &creditEvent{
			identityID:     review.ReviewerID(),
			repAmount:      upvoteRepPoints,
			category:       model.ScoreCategoryUpvote,
			tokenAmount:    upvoteTokens,
			reason:         model.TxReasonUpvote,
			contributionID: review.ContributionID(),
			fromID:         voterID,
			eventHash:      utils.HashOfParts(eventReviewUpvoted, reviewID, voterID),
		})
		if err != nil {
			return nil, err
		}
	}
	return review, nil
}

// ReviewsForContribution retrieves the reviews on a contribution,
// newest-first
func (r *ReviewProcessor) ReviewsForContribution(contributionID string) ([]*model.Review, error) {
	reviews, err := r.reviewPersister.ReviewsByContributionID(contributionID)
	if err != nil {
		if isNoResultsErr(err) {
			return []*model.Review{}, nil
		}
		return nil, err
	}
	return reviews, nil
}
