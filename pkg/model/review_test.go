package model_test

import (
	"testing"

	"github.com/openscholar/contribution-processor/pkg/model"
)

func setupSampleReview() *model.Review {
	return model.NewReview(&model.ReviewParams{
		ID:             "review1",
		ContributionID: "contribution1",
		ReviewerID:     "reviewer1",
		ReviewerName:   "R. Reviewer",
		Content:        "The proofs in section 3 check out.",
		Rating:         4,
		Votes:          []*model.Vote{},
		CreatedDateTs:  1257894000,
	})
}

func TestVoteAsMapFromMap(t *testing.T) {
	vote := model.NewVote(&model.VoteParams{
		VoterID: "voter1",
		Value:   1,
		VotedTs: 1257894000,
	})
	voteMap := vote.AsMap()
	newVote := &model.Vote{}
	err := newVote.FromMap(voteMap)
	if err != nil {
		t.Errorf("Should have not returned error from FromMap: err: %v", err)
	}
	if vote.VoterID() != newVote.VoterID() {
		t.Errorf("Should have had same voter id")
	}
	if vote.Value() != newVote.Value() {
		t.Errorf("Should have had same value")
	}
	if vote.VotedTs() != newVote.VotedTs() {
		t.Errorf("Should have had same voted ts")
	}
}

func TestReviewSetVote(t *testing.T) {
	review := setupSampleReview()
	review.SetVote(model.NewVote(&model.VoteParams{VoterID: "voter1", Value: 1, VotedTs: 1}))
	review.SetVote(model.NewVote(&model.VoteParams{VoterID: "voter2", Value: -1, VotedTs: 2}))
	if len(review.Votes()) != 2 {
		t.Errorf("Review should hold 2 votes but holds %v", len(review.Votes()))
	}

	// A second vote by the same voter replaces the first
	review.SetVote(model.NewVote(&model.VoteParams{VoterID: "voter1", Value: -1, VotedTs: 3}))
	if len(review.Votes()) != 2 {
		t.Errorf("Replacing a vote should not grow the list, holds %v", len(review.Votes()))
	}
	vote := review.VoteByVoter("voter1")
	if vote == nil || vote.Value() != -1 {
		t.Errorf("Should have replaced voter1's vote: %v", vote)
	}
}

func TestReviewVoteByVoterMissing(t *testing.T) {
	review := setupSampleReview()
	if review.VoteByVoter("nobody") != nil {
		t.Errorf("Should have returned nil for a voter with no vote")
	}
}
