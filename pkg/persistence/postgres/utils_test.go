package postgres_test

import (
	"reflect"
	"testing"

	"github.com/openscholar/contribution-processor/pkg/persistence/postgres"
)

var (
	tagsList      = []string{"distributed-systems", "consensus", "formal-methods"}
	tagsOneString = "distributed-systems,consensus,formal-methods"
)

func TestListStringToString(t *testing.T) {
	stringConverted := postgres.ListStringToString(tagsList)
	if stringConverted != tagsOneString {
		t.Errorf("string is not what it should be, %v", stringConverted)
	}
}

func TestStringToListString(t *testing.T) {
	listConverted := postgres.StringToListString(tagsOneString)
	if !reflect.DeepEqual(listConverted, tagsList) {
		t.Errorf("string slice is not what it should be, %v", listConverted)
	}
}

func TestStringToListStringEmpty(t *testing.T) {
	listConverted := postgres.StringToListString("")
	if len(listConverted) != 0 {
		t.Errorf("string slice should be empty, %v", listConverted)
	}
}

func TestDbFieldNameFromModelName(t *testing.T) {
	contributionNameMapping := map[string]string{
		"ContributionID":    "contribution_id",
		"Title":             "title",
		"Abstract":          "abstract",
		"Content":           "content",
		"AuthorID":          "author_id",
		"AuthorName":        "author_name",
		"Tags":              "tags",
		"Links":             "links",
		"Collaborators":     "collaborators",
		"Status":            "status",
		"ReviewIDs":         "review_ids",
		"VerificationProof": "verification_proof",
		"CreatedDateTs":     "creation_timestamp",
		"LastUpdatedDateTs": "last_updated_timestamp",
	}
	for modelName, dbName := range contributionNameMapping {
		dbNameCheck, err := postgres.DbFieldNameFromModelName(postgres.Contribution{}, modelName)
		if err != nil {
			t.Errorf("Error getting db struct name: %v", err)
		}
		if dbName != dbNameCheck {
			t.Errorf("Struct tag names do not match for: %v, %v", dbName, dbNameCheck)
		}
	}
}

func TestGetAllStructFieldsForQuery(t *testing.T) {
	review := postgres.Review{}
	structFieldsString, structFieldsString2 := postgres.GetAllStructFieldsForQuery(review, false)
	if structFieldsString != "review_id, contribution_id, reviewer_id, reviewer_name, content, rating, votes, creation_timestamp" {
		t.Errorf("Generated structFieldString is not what it should be: %v", structFieldsString)
	}
	if structFieldsString2 != "" {
		t.Errorf("Structfield must be empty but it isn't")
	}
	structFieldsString3, structFieldsString4 := postgres.GetAllStructFieldsForQuery(review, true)
	if structFieldsString3 != "review_id, contribution_id, reviewer_id, reviewer_name, content, rating, votes, creation_timestamp" {
		t.Errorf("Generated structFieldString is not what it should be: %v", structFieldsString3)
	}
	if structFieldsString4 != ":review_id, :contribution_id, :reviewer_id, :reviewer_name, :content, :rating, :votes, :creation_timestamp" {
		t.Errorf("Generated structFieldString with colon is not what it should be: %v", structFieldsString4)
	}
}

func TestUpdateAssignmentsForFields(t *testing.T) {
	assignments, err := postgres.UpdateAssignmentsForFields(postgres.Contribution{},
		[]string{"Status", "LastUpdatedDateTs"})
	if err != nil {
		t.Errorf("Error getting update assignments: %v", err)
	}
	expected := []string{"status=:status", "last_updated_timestamp=:last_updated_timestamp"}
	if !reflect.DeepEqual(assignments, expected) {
		t.Errorf("Update assignments are not what they should be: %v", assignments)
	}
}

func TestUpdateAssignmentsForBadField(t *testing.T) {
	_, err := postgres.UpdateAssignmentsForFields(postgres.Contribution{},
		[]string{"NotARealField"})
	if err == nil {
		t.Errorf("Should have gotten an error for an unknown field")
	}
}
