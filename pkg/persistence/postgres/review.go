package postgres // import "github.com/openscholar/contribution-processor/pkg/persistence/postgres"

import (
	"fmt"

	"github.com/openscholar/contribution-processor/pkg/model"
)

const (
	defaultReviewTableName = "review"

	votesPayloadKey = "votes"
)

// CreateReviewTableQuery returns the query to create the review table
func CreateReviewTableQuery() string {
	return CreateReviewTableQueryString(defaultReviewTableName)
}

// CreateReviewTableQueryString returns the query to create this table.
// The unique index enforces the one-review-per-reviewer invariant at the
// storage layer as well.
func CreateReviewTableQueryString(tableName string) string {
	queryString := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s(
			review_id TEXT PRIMARY KEY,
			contribution_id TEXT,
			reviewer_id TEXT,
			reviewer_name TEXT,
			content TEXT,
			rating BIGINT,
			votes JSONB,
			creation_timestamp BIGINT
		);
		CREATE UNIQUE INDEX IF NOT EXISTS %s_unique_reviewer_idx
			ON %s (contribution_id, reviewer_id);
	`, tableName, tableName, tableName)
	return queryString
}

// NewReview creates a new postgres Review from a model.Review
func NewReview(review *model.Review) *Review {
	dbReview := &Review{}
	dbReview.ReviewID = review.ID()
	dbReview.ContributionID = review.ContributionID()
	dbReview.ReviewerID = review.ReviewerID()
	dbReview.ReviewerName = review.ReviewerName()
	dbReview.Content = review.Content()
	dbReview.Rating = review.Rating()
	dbReview.CreatedDateTs = review.CreatedDateTs()

	dbReview.Votes = make(JsonbPayload)
	votes := make([]interface{}, len(review.Votes()))
	for i, vote := range review.Votes() {
		votes[i] = vote.AsMap()
	}
	dbReview.Votes[votesPayloadKey] = votes

	return dbReview
}

// Review is the postgres definition of a model.Review
type Review struct {
	ReviewID string `db:"review_id"`

	ContributionID string `db:"contribution_id"`

	ReviewerID string `db:"reviewer_id"`

	ReviewerName string `db:"reviewer_name"`

	Content string `db:"content"`

	Rating int `db:"rating"`

	Votes JsonbPayload `db:"votes"`

	CreatedDateTs int64 `db:"creation_timestamp"`
}

// DbToReviewData creates a model.Review from a postgres Review
func (r *Review) DbToReviewData() (*model.Review, error) {
	votes := []*model.Vote{}
	if rawVotes, ok := r.Votes[votesPayloadKey].([]interface{}); ok {
		for _, rawVote := range rawVotes {
			voteMap, ok := rawVote.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("Error asserting vote map from db")
			}
			vote := &model.Vote{}
			err := vote.FromMap(voteMap)
			if err != nil {
				return nil, err
			}
			votes = append(votes, vote)
		}
	}

	return model.NewReview(&model.ReviewParams{
		ID:             r.ReviewID,
		ContributionID: r.ContributionID,
		ReviewerID:     r.ReviewerID,
		ReviewerName:   r.ReviewerName,
		Content:        r.Content,
		Rating:         r.Rating,
		Votes:          votes,
		CreatedDateTs:  r.CreatedDateTs,
	}), nil
}
