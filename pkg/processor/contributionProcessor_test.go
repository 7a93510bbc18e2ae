package processor_test

import (
	"fmt"
	"testing"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/processor"
	"github.com/openscholar/contribution-processor/pkg/testutils"
)

func setupProcessor(t *testing.T) (*testutils.TestPersister, *processor.Processor) {
	persister := &testutils.TestPersister{}
	proc := processor.NewProcessor(&processor.NewProcessorParams{
		ContributionPersister:     persister,
		ReviewPersister:           persister,
		ReputationPersister:       persister,
		TokenTransactionPersister: persister,
	})
	return persister, proc
}

func contributionParams() *processor.CreateContributionParams {
	return &processor.CreateContributionParams{
		Title:    "Snapshot isolation under clock skew",
		Abstract: "An evaluation of snapshot isolation guarantees when node clocks drift.",
		Content:  "We measure the staleness window of snapshot reads across a simulated cluster.",
		AuthorID: "author1",
		Tags:     []string{"distributed-systems", "databases"},
	}
}

func TestCreateContribution(t *testing.T) {
	_, proc := setupProcessor(t)
	contribution, err := proc.CreateContribution(contributionParams())
	if err != nil {
		t.Fatalf("Should not have gotten an error creating contribution: err: %v", err)
	}
	if contribution.ID() == "" {
		t.Errorf("Should have generated an id for the contribution")
	}
	if contribution.Status() != model.ContributionStatusPublished {
		t.Errorf("Contribution should start as published but is %v", contribution.Status())
	}

	record, err := proc.Reputation("author1")
	if err != nil {
		t.Fatalf("Should not have gotten an error getting reputation: err: %v", err)
	}
	if record.Score() != 20 {
		t.Errorf("Author score should be 20 but is %v", record.Score())
	}
	if record.Specializations()["distributed-systems"] != 20 {
		t.Errorf("Author specialization should be 20 but is %v",
			record.Specializations()["distributed-systems"])
	}
	categoryScore := record.CategoryScore(model.ScoreCategoryPaper)
	if categoryScore == nil || categoryScore.Count() != 1 || categoryScore.Score() != 20 {
		t.Errorf("Author paper category should have count 1 score 20: %v", categoryScore)
	}

	balance, err := proc.Balance("author1")
	if err != nil {
		t.Fatalf("Should not have gotten an error getting balance: err: %v", err)
	}
	if balance != 50 {
		t.Errorf("Author balance should be 50 but is %v", balance)
	}
}

func TestCreateContributionWithCollaborators(t *testing.T) {
	_, proc := setupProcessor(t)
	params := contributionParams()
	params.Collaborators = []*model.Collaborator{
		model.NewCollaborator(&model.CollaboratorParams{IdentityID: "collab1", Role: "analysis"}),
		model.NewCollaborator(&model.CollaboratorParams{IdentityID: "collab2", Role: "editing"}),
	}
	_, err := proc.CreateContribution(params)
	if err != nil {
		t.Fatalf("Should not have gotten an error creating contribution: err: %v", err)
	}

	for _, collaboratorID := range []string{"collab1", "collab2"} {
		record, err := proc.Reputation(collaboratorID)
		if err != nil {
			t.Fatalf("Should not have gotten an error getting reputation: err: %v", err)
		}
		if record.Score() != 10 {
			t.Errorf("Collaborator %v score should be 10 but is %v", collaboratorID, record.Score())
		}
		categoryScore := record.CategoryScore(model.ScoreCategoryCollaboration)
		if categoryScore == nil || categoryScore.Count() != 1 {
			t.Errorf("Collaborator %v collaboration category should have count 1: %v",
				collaboratorID, categoryScore)
		}
		balance, _ := proc.Balance(collaboratorID)
		if balance != 20 {
			t.Errorf("Collaborator %v balance should be 20 but is %v", collaboratorID, balance)
		}
	}
}

func TestCreateContributionValidation(t *testing.T) {
	_, proc := setupProcessor(t)

	params := contributionParams()
	params.Title = ""
	_, err := proc.CreateContribution(params)
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for missing title: %v", err)
	}

	params = contributionParams()
	params.Abstract = ""
	_, err = proc.CreateContribution(params)
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for missing abstract: %v", err)
	}

	params = contributionParams()
	params.Content = ""
	_, err = proc.CreateContribution(params)
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for missing content: %v", err)
	}

	params = contributionParams()
	params.AuthorID = ""
	_, err = proc.CreateContribution(params)
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for missing author: %v", err)
	}

	// Nothing should have been credited for the failed submissions
	balance, _ := proc.Balance("author1")
	if balance != 0 {
		t.Errorf("Author balance should still be 0 but is %v", balance)
	}
}

func TestContributionNotFound(t *testing.T) {
	_, proc := setupProcessor(t)
	_, err := proc.Contribution("nosuchid")
	if _, ok := err.(*model.NotFoundError); !ok {
		t.Errorf("Should have gotten a not found error: %v", err)
	}
}

func TestContributionsByCriteria(t *testing.T) {
	_, proc := setupProcessor(t)
	_, err := proc.CreateContribution(contributionParams())
	if err != nil {
		t.Fatalf("Should not have gotten an error creating contribution: err: %v", err)
	}
	params := contributionParams()
	params.AuthorID = "author2"
	params.Tags = []string{"formal-methods"}
	_, err = proc.CreateContribution(params)
	if err != nil {
		t.Fatalf("Should not have gotten an error creating contribution: err: %v", err)
	}

	contributions, err := proc.Contributions(&model.ContributionCriteria{AuthorID: "author1"})
	if err != nil {
		t.Fatalf("Should not have gotten an error listing contributions: err: %v", err)
	}
	if len(contributions) != 1 {
		t.Errorf("Should have found 1 contribution for author1, found %v", len(contributions))
	}

	contributions, err = proc.Contributions(&model.ContributionCriteria{Tags: []string{"formal-methods"}})
	if err != nil {
		t.Fatalf("Should not have gotten an error listing contributions: err: %v", err)
	}
	if len(contributions) != 1 {
		t.Errorf("Should have found 1 contribution tagged formal-methods, found %v", len(contributions))
	}
}

// Full lifecycle: three strong reviews push a contribution through peer
// reviewed into verified and pay out the verification bonuses
func TestContributionVerificationLifecycle(t *testing.T) {
	_, proc := setupProcessor(t)
	contribution, err := proc.CreateContribution(contributionParams())
	if err != nil {
		t.Fatalf("Should not have gotten an error creating contribution: err: %v", err)
	}

	ratings := map[string]int{"reviewer1": 5, "reviewer2": 4, "reviewer3": 5}
	for reviewerID, rating := range ratings {
		_, err = proc.SubmitReview(&processor.SubmitReviewParams{
			ContributionID: contribution.ID(),
			ReviewerID:     reviewerID,
			Content:        "Methodology is sound and the results replicate.",
			Rating:         rating,
		})
		if err != nil {
			t.Fatalf("Should not have gotten an error submitting review: err: %v", err)
		}
	}

	updated, err := proc.Contribution(contribution.ID())
	if err != nil {
		t.Fatalf("Should not have gotten an error getting contribution: err: %v", err)
	}
	if updated.Status() != model.ContributionStatusVerified {
		t.Errorf("Contribution should be verified but is %v", updated.Status())
	}
	if updated.VerificationProof() == "" {
		t.Errorf("Verified contribution should carry a verification proof")
	}
	if len(updated.ReviewIDs()) != 3 {
		t.Errorf("Contribution should have 3 review ids but has %v", len(updated.ReviewIDs()))
	}

	// Author: 50 for creation plus the 100 verification bonus
	balance, _ := proc.Balance("author1")
	if balance != 150 {
		t.Errorf("Author balance should be 150 but is %v", balance)
	}
	record, _ := proc.Reputation("author1")
	if record.Score() != 20 {
		t.Errorf("Verification bonus is token only, author score should stay 20 but is %v",
			record.Score())
	}

	// Each reviewer: 15 for the review plus the 20 verification bonus
	for reviewerID := range ratings {
		balance, _ = proc.Balance(reviewerID)
		if balance != 35 {
			t.Errorf("Reviewer %v balance should be 35 but is %v", reviewerID, balance)
		}
		record, _ = proc.Reputation(reviewerID)
		if record.Score() != 10 {
			t.Errorf("Reviewer %v score should be 10 but is %v", reviewerID, record.Score())
		}
		categoryScore := record.CategoryScore(model.ScoreCategoryReview)
		if categoryScore == nil || categoryScore.Count() != 1 || categoryScore.Score() != 10 {
			t.Errorf("Reviewer %v review category should have count 1 score 10: %v",
				reviewerID, categoryScore)
		}
	}
}

// Replaying reconciliation over settled contributions must not move any
// balance or score
func TestReconcileIsIdempotent(t *testing.T) {
	_, proc := setupProcessor(t)
	contribution, err := proc.CreateContribution(contributionParams())
	if err != nil {
		t.Fatalf("Should not have gotten an error creating contribution: err: %v", err)
	}
	for _, reviewerID := range []string{"reviewer1", "reviewer2", "reviewer3"} {
		_, err = proc.SubmitReview(&processor.SubmitReviewParams{
			ContributionID: contribution.ID(),
			ReviewerID:     reviewerID,
			Content:        "Solid work.",
			Rating:         5,
		})
		if err != nil {
			t.Fatalf("Should not have gotten an error submitting review: err: %v", err)
		}
	}

	before, _ := proc.Balance("author1")
	for i := 0; i < 3; i++ {
		err = proc.Reconcile()
		if err != nil {
			t.Fatalf("Should not have gotten an error reconciling: err: %v", err)
		}
	}
	after, _ := proc.Balance("author1")
	if before != after {
		t.Errorf("Reconcile changed the author balance from %v to %v", before, after)
	}

	history, _ := proc.History("reviewer1")
	if len(history) != 2 {
		t.Errorf("Reviewer should have exactly 2 transactions but has %v", len(history))
	}
}

// fieldRecordingPersister captures the updated field lists passed to
// contribution updates so tests can assert on what reaches the persister.
type fieldRecordingPersister struct {
	*testutils.TestPersister

	updatedFieldLists [][]string
}

func (f *fieldRecordingPersister) UpdateContribution(contribution *model.Contribution,
	updatedFields []string) error {
	f.updatedFieldLists = append(f.updatedFieldLists, updatedFields)
	return f.TestPersister.UpdateContribution(contribution, updatedFields)
}

func TestVerifiedTransitionFieldListHasNoDuplicates(t *testing.T) {
	base := &testutils.TestPersister{}
	recorder := &fieldRecordingPersister{TestPersister: base}
	proc := processor.NewProcessor(&processor.NewProcessorParams{
		ContributionPersister:     recorder,
		ReviewPersister:           base,
		ReputationPersister:       base,
		TokenTransactionPersister: base,
	})

	contribution, err := proc.CreateContribution(contributionParams())
	if err != nil {
		t.Fatalf("Should not have gotten an error creating contribution: err: %v", err)
	}
	for index, rating := range []int{5, 4, 5} {
		submitReview(t, proc, contribution.ID(), fmt.Sprintf("reviewer%v", index+1), rating)
	}

	updated, err := proc.Contribution(contribution.ID())
	if err != nil {
		t.Fatalf("Should not have gotten an error getting contribution: err: %v", err)
	}
	if updated.Status() != model.ContributionStatusVerified {
		t.Fatalf("Contribution should be verified but is %v", updated.Status())
	}

	if len(recorder.updatedFieldLists) == 0 {
		t.Fatalf("Should have recorded at least one contribution update")
	}
	for _, updatedFields := range recorder.updatedFieldLists {
		seen := map[string]bool{}
		for _, field := range updatedFields {
			if seen[field] {
				t.Errorf("Field %v should appear once in update list %v", field, updatedFields)
			}
			seen[field] = true
		}
	}

	lastFields := recorder.updatedFieldLists[len(recorder.updatedFieldLists)-1]
	foundProof := false
	for _, field := range lastFields {
		if field == "VerificationProof" {
			foundProof = true
		}
	}
	if !foundProof {
		t.Errorf("Verify update should include the verification proof field: %v", lastFields)
	}
}
