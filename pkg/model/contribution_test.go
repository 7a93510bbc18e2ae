package model_test

import (
	"testing"

	"github.com/openscholar/contribution-processor/pkg/model"
)

func setupSampleContribution() *model.Contribution {
	return model.NewContribution(&model.ContributionParams{
		ID:       "contribution1",
		Title:    "Snapshot isolation under clock skew",
		Abstract: "An evaluation of snapshot isolation guarantees when node clocks drift.",
		Content:  "We measure the staleness window of snapshot reads.",
		AuthorID: "author1",
		Tags:     []string{"distributed-systems", "databases"},
		Links: []*model.Link{
			model.NewLink(&model.LinkParams{Kind: "dataset", URL: "https://example.org/data"}),
		},
		Collaborators: []*model.Collaborator{
			model.NewCollaborator(&model.CollaboratorParams{IdentityID: "collab1", Role: "analysis"}),
		},
		Status:            model.ContributionStatusPublished,
		ReviewIDs:         []string{},
		CreatedDateTs:     1257894000,
		LastUpdatedDateTs: 1257894000,
	})
}

func TestContributionStatusNames(t *testing.T) {
	nameMapping := map[model.ContributionStatus]string{
		model.ContributionStatusDraft:        "draft",
		model.ContributionStatusPublished:    "published",
		model.ContributionStatusPeerReviewed: "peer_reviewed",
		model.ContributionStatusVerified:     "verified",
	}
	for status, name := range nameMapping {
		if status.Name() != name {
			t.Errorf("Status name should be %v but is %v", name, status.Name())
		}
		statusCheck, ok := model.ContributionStatusFromName[name]
		if !ok || statusCheck != status {
			t.Errorf("Should have mapped name %v back to the status", name)
		}
	}
}

func TestContributionPrimaryTag(t *testing.T) {
	contribution := setupSampleContribution()
	if contribution.PrimaryTag() != "distributed-systems" {
		t.Errorf("Primary tag should be the first tag: %v", contribution.PrimaryTag())
	}

	untagged := model.NewContribution(&model.ContributionParams{ID: "contribution2"})
	if untagged.PrimaryTag() != "" {
		t.Errorf("Untagged contribution should have empty primary tag: %v",
			untagged.PrimaryTag())
	}
}

func TestContributionAddReviewID(t *testing.T) {
	contribution := setupSampleContribution()
	contribution.AddReviewID("review1")
	contribution.AddReviewID("review2")
	if len(contribution.ReviewIDs()) != 2 {
		t.Errorf("Should hold 2 review ids but holds %v", len(contribution.ReviewIDs()))
	}
}

func TestLinkAsMapFromMap(t *testing.T) {
	link := model.NewLink(&model.LinkParams{
		Kind: "code",
		URL:  "https://example.org/repo",
		Note: "replication scripts",
	})
	linkMap := link.AsMap()
	newLink := &model.Link{}
	err := newLink.FromMap(linkMap)
	if err != nil {
		t.Errorf("Should have not returned error from FromMap: err: %v", err)
	}
	if link.Kind() != newLink.Kind() {
		t.Errorf("Should have had same kind")
	}
	if link.URL() != newLink.URL() {
		t.Errorf("Should have had same url")
	}
	if link.Note() != newLink.Note() {
		t.Errorf("Should have had same note")
	}
}

func TestCollaboratorAsMapFromMap(t *testing.T) {
	collaborator := model.NewCollaborator(&model.CollaboratorParams{
		IdentityID: "collab1",
		Role:       "analysis",
	})
	collabMap := collaborator.AsMap()
	newCollaborator := &model.Collaborator{}
	err := newCollaborator.FromMap(collabMap)
	if err != nil {
		t.Errorf("Should have not returned error from FromMap: err: %v", err)
	}
	if collaborator.IdentityID() != newCollaborator.IdentityID() {
		t.Errorf("Should have had same identity id")
	}
	if collaborator.Role() != newCollaborator.Role() {
		t.Errorf("Should have had same role")
	}
}
