package processor // import "github.com/openscholar/contribution-processor/pkg/processor"

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/utils"
)

// Field names on the contribution model passed to the persister on updates
const (
	statusFieldName            = "Status"
	reviewIDsFieldName         = "ReviewIDs"
	verificationProofFieldName = "VerificationProof"
	lastUpdatedFieldName       = "LastUpdatedDateTs"
)

// Event hash prefixes keying the logical credit events of the lifecycle
const (
	eventContributionCreated  = "contribution-created"
	eventContributionVerified = "contribution-verified"
)

// NewContributionProcessorParams are the params to initialize a
// ContributionProcessor
type NewContributionProcessorParams struct {
	ContributionPersister model.ContributionPersister
	ReviewPersister       model.ReviewPersister
	Reputation            *ReputationProcessor
	Ledger                *LedgerProcessor
	IdentityResolver      model.IdentityResolver
}

// NewContributionProcessor is a convenience function to init a
// ContributionProcessor
func NewContributionProcessor(params *NewContributionProcessorParams) *ContributionProcessor {
	return &ContributionProcessor{
		contributionPersister: params.ContributionPersister,
		reviewPersister:       params.ReviewPersister,
		reputation:            params.Reputation,
		ledger:                params.Ledger,
		identityResolver:      params.IdentityResolver,
	}
}

// ContributionProcessor owns the contribution entities and their lifecycle
// state machine. Contributions only ever advance published ->
// peer_reviewed -> verified; verified is terminal.
type ContributionProcessor struct {
	contributionPersister model.ContributionPersister
	reviewPersister       model.ReviewPersister
	reputation            *ReputationProcessor
	ledger                *LedgerProcessor
	identityResolver      model.IdentityResolver
}

// CreateContributionParams are the params for a contribution submission
type CreateContributionParams struct {
	Title         string
	Abstract      string
	Content       string
	AuthorID      string
	Tags          []string
	Links         []*model.Link
	Collaborators []*model.Collaborator
}

// CreateContribution creates a new contribution in published status and
// credits the author and any collaborators
func (c *ContributionProcessor) CreateContribution(params *CreateContributionParams) (*model.Contribution, error) {
	err := validateCreateParams(params)
	if err != nil {
		return nil, err
	}

	contributionID, err := utils.NewUUID()
	if err != nil {
		return nil, err
	}
	now := utils.CurrentEpochSecsInInt64()
	contribution := model.NewContribution(&model.ContributionParams{
		ID:                contributionID,
		Title:             params.Title,
		Abstract:          params.Abstract,
		Content:           params.Content,
		AuthorID:          params.AuthorID,
		AuthorName:        resolveDisplayName(c.identityResolver, params.AuthorID),
		Tags:              params.Tags,
		Links:             params.Links,
		Collaborators:     params.Collaborators,
		Status:            model.ContributionStatusPublished,
		ReviewIDs:         []string{},
		CreatedDateTs:     now,
		LastUpdatedDateTs: now,
	})
	err = c.contributionPersister.CreateContribution(contribution)
	if err != nil {
		return nil, err
	}

	err = applyCreditEvent(c.reputation, c.ledger, &creditEvent{
		identityID:     params.AuthorID,
		repAmount:      authorCreationRepPoints,
		category:       model.ScoreCategoryPaper,
		field:          contribution.PrimaryTag(),
		tokenAmount:    authorCreationTokens,
		reason:         model.TxReasonContribution,
		contributionID: contributionID,
		eventHash: utils.HashOfParts(eventContributionCreated, contributionID,
			params.AuthorID, "author"),
	})
	if err != nil {
		return nil, err
	}

	for _, collaborator := range params.Collaborators {
		err = applyCreditEvent(c.reputation, c.ledger, &creditEvent{
			identityID:     collaborator.IdentityID(),
			repAmount:      collaboratorRepPoints,
			category:       model.ScoreCategoryCollaboration,
			tokenAmount:    collaboratorTokens,
			reason:         model.TxReasonContribution,
			contributionID: contributionID,
			eventHash: utils.HashOfParts(eventContributionCreated, contributionID,
				collaborator.IdentityID(), "collaborator"),
		})
		if err != nil {
			return nil, err
		}
	}

	log.Infof("Created contribution %v by author %v\n", contributionID, params.AuthorID)
	return contribution, nil
}

// Contribution retrieves a contribution by id
func (c *ContributionProcessor) Contribution(contributionID string) (*model.Contribution, error) {
	contribution, err := c.contributionPersister.ContributionByID(contributionID)
	if err != nil {
		if isNoResultsErr(err) {
			return nil, &model.NotFoundError{Entity: "contribution", ID: contributionID}
		}
		return nil, err
	}
	return contribution, nil
}

// Contributions retrieves contributions matching the criteria, newest-first
func (c *ContributionProcessor) Contributions(criteria *model.ContributionCriteria) ([]*model.Contribution, error) {
	contributions, err := c.contributionPersister.ContributionsByCriteria(criteria)
	if err != nil {
		if isNoResultsErr(err) {
			return []*model.Contribution{}, nil
		}
		return nil, err
	}
	return contributions, nil
}

// advanceOnReview re-evaluates the lifecycle thresholds for a contribution
// against its recorded reviews and applies any transition that is due. The
// evaluation is idempotent: statuses never regress, verification credits
// are keyed by event hash, and a verified contribution is left untouched.
func (c *ContributionProcessor) advanceOnReview(contribution *model.Contribution) error {
	if contribution.Status() == model.ContributionStatusVerified {
		return nil
	}

	reviews, err := c.reviewPersister.ReviewsByContributionID(contribution.ID())
	if err != nil {
		if isNoResultsErr(err) {
			return nil
		}
		return err
	}
	if len(reviews) < minReviewsForPeerReview {
		return nil
	}

	updatedFields := []string{}
	if contribution.Status() == model.ContributionStatusPublished {
		contribution.SetStatus(model.ContributionStatusPeerReviewed)
		updatedFields = []string{statusFieldName}
		log.Infof("Contribution %v reached %v reviews, now peer reviewed\n",
			contribution.ID(), len(reviews))
	}

	// Replaces rather than appends so status appears once in the list when
	// both transitions fire on the same review.
	if meanRating(reviews) >= verifiedRatingThreshold {
		contribution.SetStatus(model.ContributionStatusVerified)
		contribution.SetVerificationProof(VerifyContribution(contribution))
		updatedFields = []string{statusFieldName, verificationProofFieldName}
	}

	if len(updatedFields) == 0 {
		return nil
	}
	contribution.SetLastUpdatedDateTs(utils.CurrentEpochSecsInInt64())
	updatedFields = append(updatedFields, lastUpdatedFieldName)
	err = c.contributionPersister.UpdateContribution(contribution, updatedFields)
	if err != nil {
		return err
	}

	if contribution.Status() == model.ContributionStatusVerified {
		return c.creditVerification(contribution, reviews)
	}
	return nil
}

// creditVerification credits the author bonus and the per-reviewer bonus
// for a contribution entering verified status
func (c *ContributionProcessor) creditVerification(contribution *model.Contribution,
	reviews []*model.Review) error {
	err := applyCreditEvent(c.reputation, c.ledger, &creditEvent{
		identityID:     contribution.AuthorID(),
		repAmount:      0,
		category:       model.ScoreCategoryPaper,
		tokenAmount:    verifiedAuthorTokens,
		reason:         model.TxReasonContribution,
		contributionID: contribution.ID(),
		eventHash: utils.HashOfParts(eventContributionVerified, contribution.ID(),
			contribution.AuthorID(), "author"),
	})
	if err != nil {
		return err
	}
	for _, review := range reviews {
		err = applyCreditEvent(c.reputation, c.ledger, &creditEvent{
			identityID:     review.ReviewerID(),
			repAmount:      0,
			category:       model.ScoreCategoryReview,
			tokenAmount:    verifiedReviewerTokens,
			reason:         model.TxReasonReview,
			contributionID: contribution.ID(),
			eventHash: utils.HashOfParts(eventContributionVerified, contribution.ID(),
				review.ReviewerID(), "reviewer"),
		})
		if err != nil {
			return err
		}
	}
	log.Infof("Contribution %v verified, credited author and %v reviewers\n",
		contribution.ID(), len(reviews))
	return nil
}

func validateCreateParams(params *CreateContributionParams) error {
	if params.Title == "" {
		return &model.ValidationError{Field: "title", Message: "title required"}
	}
	if params.Abstract == "" {
		return &model.ValidationError{Field: "abstract", Message: "abstract required"}
	}
	if params.Content == "" {
		return &model.ValidationError{Field: "content", Message: "content required"}
	}
	if params.AuthorID == "" {
		return &model.ValidationError{Field: "authorId", Message: "author identity required"}
	}
	return nil
}

func meanRating(reviews []*model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating()
	}
	return float64(total) / float64(len(reviews))
}

// resolveDisplayName resolves the display name for an identity, falling
// back to a generated placeholder label. Resolution failure never blocks
// an operation.
func resolveDisplayName(resolver model.IdentityResolver, identityID string) string {
	if resolver != nil {
		name, err := resolver.DisplayName(identityID)
		if err == nil && name != "" {
			return name
		}
		if err != nil {
			log.Infof("Could not resolve display name for %v: err: %v\n", identityID, err)
		}
	}
	label := identityID
	if len(label) > 8 {
		label = label[:8]
	}
	return fmt.Sprintf("scholar-%v", label)
}
