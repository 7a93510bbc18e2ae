package model // import "github.com/openscholar/contribution-processor/pkg/model"

const (
	// MinReviewRating is the lowest valid review rating
	MinReviewRating = 1

	// MaxReviewRating is the highest valid review rating
	MaxReviewRating = 5
)

// VoteParams are the params to initialize a new Vote
type VoteParams struct {
	VoterID string
	Value   int
	VotedTs int64
}

// NewVote is a convenience method to init a Vote struct
func NewVote(params *VoteParams) *Vote {
	return &Vote{
		voterID: params.VoterID,
		value:   params.Value,
		votedTs: params.VotedTs,
	}
}

// Vote is a single identity's up/down vote on a review. A voter holds at
// most one active vote per review.
type Vote struct {
	voterID string

	// +1 for an upvote, -1 for a downvote
	value int

	votedTs int64
}

// VoterID returns the identity id of the voter
func (v *Vote) VoterID() string {
	return v.voterID
}

// Value returns the vote value, +1 or -1
func (v *Vote) Value() int {
	return v.value
}

// VotedTs returns the timestamp the vote was last set
func (v *Vote) VotedTs() int64 {
	return v.votedTs
}

// AsMap converts the Vote to its map representation
func (v *Vote) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"voterId": v.voterID,
		"value":   v.value,
		"votedTs": v.votedTs,
	}
}

// FromMap populates the Vote from its map representation
func (v *Vote) FromMap(voteMap map[string]interface{}) error {
	if voterID, ok := voteMap["voterId"]; ok {
		v.voterID = voterID.(string)
	}
	if value, ok := voteMap["value"]; ok {
		v.value = numToInt(value)
	}
	if votedTs, ok := voteMap["votedTs"]; ok {
		v.votedTs = numToInt64(votedTs)
	}
	return nil
}

// ReviewParams are the params to initialize a new Review
type ReviewParams struct {
	ID             string
	ContributionID string
	ReviewerID     string
	ReviewerName   string
	Content        string
	Rating         int
	Votes          []*Vote
	CreatedDateTs  int64
}

// NewReview is a convenience method to init a Review struct
func NewReview(params *ReviewParams) *Review {
	return &Review{
		id:             params.ID,
		contributionID: params.ContributionID,
		reviewerID:     params.ReviewerID,
		reviewerName:   params.ReviewerName,
		content:        params.Content,
		rating:         params.Rating,
		votes:          params.Votes,
		createdDateTs:  params.CreatedDateTs,
	}
}

// Review represents a rated peer evaluation of a contribution by a specific
// identity. At most one review exists per (contribution, reviewer) pair.
type Review struct {
	id string

	contributionID string

	reviewerID string

	// Denormalized display name for the reviewer
	reviewerName string

	content string

	// rating in [MinReviewRating, MaxReviewRating]
	rating int

	votes []*Vote

	createdDateTs int64
}

// ID returns the id of the review
func (r *Review) ID() string {
	return r.id
}

// ContributionID returns the id of the reviewed contribution
func (r *Review) ContributionID() string {
	return r.contributionID
}

// ReviewerID returns the identity id of the reviewer
func (r *Review) ReviewerID() string {
	return r.reviewerID
}

// ReviewerName returns the denormalized display name of the reviewer
func (r *Review) ReviewerName() string {
	return r.reviewerName
}

// Content returns the text of the review
func (r *Review) Content() string {
	return r.content
}

// Rating returns the integer rating given by the reviewer
func (r *Review) Rating() int {
	return r.rating
}

// Votes returns the votes recorded on this review
func (r *Review) Votes() []*Vote {
	return r.votes
}

// VoteByVoter returns the voter's current vote on this review, nil if the
// voter has not voted
func (r *Review) VoteByVoter(voterID string) *Vote {
	for _, vote := range r.votes {
		if vote.VoterID() == voterID {
			return vote
		}
	}
	return nil
}

// SetVote records a voter's vote on this review, overwriting any previous
// vote by the same voter
func (r *Review) SetVote(vote *Vote) {
	for index, existing := range r.votes {
		if existing.VoterID() == vote.VoterID() {
			r.votes[index] = vote
			return
		}
	}
	r.votes = append(r.votes, vote)
}

// CreatedDateTs returns the timestamp of the review submission
func (r *Review) CreatedDateTs() int64 {
	return r.createdDateTs
}
