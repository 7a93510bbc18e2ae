package processor_test

import (
	"testing"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/processor"
	"github.com/openscholar/contribution-processor/pkg/testutils"
)

func setupProcessorWithBadgePolicy(t *testing.T) (*testutils.TestPersister, *processor.Processor) {
	persister := &testutils.TestPersister{}
	proc := processor.NewProcessor(&processor.NewProcessorParams{
		ContributionPersister:     persister,
		ReviewPersister:           persister,
		ReputationPersister:       persister,
		TokenTransactionPersister: persister,
		PreventDuplicateBadges:    true,
	})
	return persister, proc
}

func TestReputationUnknownIdentity(t *testing.T) {
	_, proc := setupProcessor(t)
	record, err := proc.Reputation("nobody")
	if err != nil {
		t.Fatalf("Should not have gotten an error getting reputation: err: %v", err)
	}
	if record.IdentityID() != "nobody" {
		t.Errorf("Empty record should carry the identity id: %v", record.IdentityID())
	}
	if record.Score() != 0 {
		t.Errorf("Empty record score should be 0 but is %v", record.Score())
	}
	if len(record.Badges()) != 0 || len(record.Credentials()) != 0 {
		t.Errorf("Empty record should have no badges or credentials")
	}
}

func TestRecordVerification(t *testing.T) {
	_, proc := setupProcessor(t)
	credential, err := proc.RecordVerification("scholar1", "institutional", "MIT CSAIL")
	if err != nil {
		t.Fatalf("Should not have gotten an error recording verification: err: %v", err)
	}
	if credential.CredentialType() != "institutional" {
		t.Errorf("Credential type should be institutional: %v", credential.CredentialType())
	}
	if credential.Proof() == "" {
		t.Errorf("Credential should carry a proof token")
	}

	record, _ := proc.Reputation("scholar1")
	if record.Score() != 50 {
		t.Errorf("Verification should credit 50 but score is %v", record.Score())
	}
	categoryScore := record.CategoryScore(model.ScoreCategoryVerification)
	if categoryScore == nil || categoryScore.Count() != 1 || categoryScore.Score() != 50 {
		t.Errorf("Verification category should have count 1 score 50: %v", categoryScore)
	}
	if len(record.Credentials()) != 1 {
		t.Errorf("Record should hold 1 credential but holds %v", len(record.Credentials()))
	}
}

func TestRecordVerificationDefaultType(t *testing.T) {
	_, proc := setupProcessor(t)
	credential, err := proc.RecordVerification("scholar1", "", "")
	if err != nil {
		t.Fatalf("Should not have gotten an error recording verification: err: %v", err)
	}
	if credential.CredentialType() != "self_asserted" {
		t.Errorf("Missing type should default to self_asserted: %v",
			credential.CredentialType())
	}
}

func TestAwardBadge(t *testing.T) {
	_, proc := setupProcessor(t)
	badge, err := proc.AwardBadge("scholar1", "first-paper", "First Paper",
		"Published a first contribution")
	if err != nil {
		t.Fatalf("Should not have gotten an error awarding badge: err: %v", err)
	}
	if badge.BadgeID() != "first-paper" {
		t.Errorf("Badge id should be first-paper: %v", badge.BadgeID())
	}
	if badge.Proof() == "" {
		t.Errorf("Badge should carry a proof token")
	}

	record, _ := proc.Reputation("scholar1")
	if !record.HasBadge("first-paper") {
		t.Errorf("Record should hold the awarded badge")
	}
	if record.Score() != 0 {
		t.Errorf("Badges carry no score, should be 0 but is %v", record.Score())
	}
}

// Duplicate badge ids accumulate by default; the policy flag turns the
// second award into a no-op
func TestAwardBadgeDuplicates(t *testing.T) {
	_, proc := setupProcessor(t)
	for i := 0; i < 2; i++ {
		_, err := proc.AwardBadge("scholar1", "top-reviewer", "Top Reviewer", "")
		if err != nil {
			t.Fatalf("Should not have gotten an error awarding badge: err: %v", err)
		}
	}
	record, _ := proc.Reputation("scholar1")
	if len(record.Badges()) != 2 {
		t.Errorf("Default policy should accumulate duplicates, has %v badges",
			len(record.Badges()))
	}

	_, proc2 := setupProcessorWithBadgePolicy(t)
	first, err := proc2.AwardBadge("scholar1", "top-reviewer", "Top Reviewer", "")
	if err != nil {
		t.Fatalf("Should not have gotten an error awarding badge: err: %v", err)
	}
	if first == nil {
		t.Fatalf("First award should return the badge")
	}
	second, err := proc2.AwardBadge("scholar1", "top-reviewer", "Top Reviewer", "")
	if err != nil {
		t.Fatalf("Duplicate award should be a silent no-op: err: %v", err)
	}
	if second != nil {
		t.Errorf("Duplicate award should not return a badge")
	}
	record2, _ := proc2.Reputation("scholar1")
	if len(record2.Badges()) != 1 {
		t.Errorf("Prevention policy should keep 1 badge, has %v", len(record2.Badges()))
	}
}

func TestAwardBadgeValidation(t *testing.T) {
	_, proc := setupProcessor(t)
	_, err := proc.AwardBadge("", "first-paper", "First Paper", "")
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for missing identity: %v", err)
	}
	_, err = proc.AwardBadge("scholar1", "", "First Paper", "")
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for missing badge id: %v", err)
	}
}

func TestRecordVerificationValidation(t *testing.T) {
	_, proc := setupProcessor(t)
	_, err := proc.RecordVerification("", "institutional", "MIT CSAIL")
	if _, ok := err.(*model.ValidationError); !ok {
		t.Errorf("Should have gotten a validation error for missing identity: %v", err)
	}
}
