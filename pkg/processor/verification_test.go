package processor_test

import (
	"testing"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/processor"
)

func testContribution(id string, title string) *model.Contribution {
	return model.NewContribution(&model.ContributionParams{
		ID:            id,
		Title:         title,
		Abstract:      "An abstract.",
		Content:       "The content.",
		AuthorID:      "author1",
		Status:        model.ContributionStatusPublished,
		CreatedDateTs: 1656173412,
	})
}

func TestVerifyContributionDeterministic(t *testing.T) {
	first := processor.VerifyContribution(testContribution("c1", "A title"))
	second := processor.VerifyContribution(testContribution("c1", "A title"))
	if first == "" {
		t.Errorf("Proof token should not be empty")
	}
	if first != second {
		t.Errorf("Same contribution snapshot should yield the same token: %v != %v",
			first, second)
	}
	if len(first) != 64 {
		t.Errorf("Token should be a sha256 hex digest, got length %v", len(first))
	}
}

func TestVerifyContributionDiffers(t *testing.T) {
	first := processor.VerifyContribution(testContribution("c1", "A title"))
	other := processor.VerifyContribution(testContribution("c2", "A title"))
	if first == other {
		t.Errorf("Different contributions should yield different tokens")
	}
	retitled := processor.VerifyContribution(testContribution("c1", "Another title"))
	if first == retitled {
		t.Errorf("A changed title should yield a different token")
	}
}
