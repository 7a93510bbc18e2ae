package postgres // import "github.com/openscholar/contribution-processor/pkg/persistence/postgres"

import (
	"fmt"

	"github.com/openscholar/contribution-processor/pkg/model"
)

const (
	defaultContributionTableName = "contribution"

	linksPayloadKey         = "links"
	collaboratorsPayloadKey = "collaborators"
)

// CreateContributionTableQuery returns the query to create the contribution
// table
func CreateContributionTableQuery() string {
	return CreateContributionTableQueryString(defaultContributionTableName)
}

// CreateContributionTableQueryString returns the query to create this table
func CreateContributionTableQueryString(tableName string) string {
	queryString := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s(
			contribution_id TEXT PRIMARY KEY,
			title TEXT,
			abstract TEXT,
			content TEXT,
			author_id TEXT,
			author_name TEXT,
			tags TEXT,
			links JSONB,
			collaborators JSONB,
			status BIGINT,
			review_ids TEXT,
			verification_proof TEXT,
			creation_timestamp BIGINT,
			last_updated_timestamp BIGINT
		);
	`, tableName)
	return queryString
}

// CreateContributionTableIndices returns the query to create indices for
// this table
func CreateContributionTableIndices() string {
	return CreateContributionTableIndicesString(defaultContributionTableName)
}

// CreateContributionTableIndicesString returns the query to create indices
// for this table
func CreateContributionTableIndicesString(tableName string) string {
	queryString := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_author_idx ON %s (author_id);
		CREATE INDEX IF NOT EXISTS %s_status_idx ON %s (status);
	`, tableName, tableName, tableName, tableName)
	return queryString
}

// NewContribution creates a new postgres Contribution from a
// model.Contribution
func NewContribution(contribution *model.Contribution) *Contribution {
	dbContribution := &Contribution{}
	dbContribution.ContributionID = contribution.ID()
	dbContribution.Title = contribution.Title()
	dbContribution.Abstract = contribution.Abstract()
	dbContribution.Content = contribution.Content()
	dbContribution.AuthorID = contribution.AuthorID()
	dbContribution.AuthorName = contribution.AuthorName()
	dbContribution.Tags = ListStringToString(contribution.Tags())
	dbContribution.Status = int(contribution.Status())
	dbContribution.ReviewIDs = ListStringToString(contribution.ReviewIDs())
	dbContribution.VerificationProof = contribution.VerificationProof()
	dbContribution.CreatedDateTs = contribution.CreatedDateTs()
	dbContribution.LastUpdatedDateTs = contribution.LastUpdatedDateTs()

	dbContribution.Links = make(JsonbPayload)
	links := make([]interface{}, len(contribution.Links()))
	for i, link := range contribution.Links() {
		links[i] = link.AsMap()
	}
	dbContribution.Links[linksPayloadKey] = links

	dbContribution.Collaborators = make(JsonbPayload)
	collaborators := make([]interface{}, len(contribution.Collaborators()))
	for i, collaborator := range contribution.Collaborators() {
		collaborators[i] = collaborator.AsMap()
	}
	dbContribution.Collaborators[collaboratorsPayloadKey] = collaborators

	return dbContribution
}

// Contribution is the postgres definition of a model.Contribution
type Contribution struct {
	ContributionID string `db:"contribution_id"`

	Title string `db:"title"`

	Abstract string `db:"abstract"`

	Content string `db:"content"`

	AuthorID string `db:"author_id"`

	AuthorName string `db:"author_name"`

	Tags string `db:"tags"`

	Links JsonbPayload `db:"links"`

	Collaborators JsonbPayload `db:"collaborators"`

	Status int `db:"status"`

	ReviewIDs string `db:"review_ids"`

	VerificationProof string `db:"verification_proof"`

	CreatedDateTs int64 `db:"creation_timestamp"`

	LastUpdatedDateTs int64 `db:"last_updated_timestamp"`
}

// DbToContributionData creates a model.Contribution from a postgres
// Contribution
func (c *Contribution) DbToContributionData() (*model.Contribution, error) {
	links := []*model.Link{}
	if rawLinks, ok := c.Links[linksPayloadKey].([]interface{}); ok {
		for _, rawLink := range rawLinks {
			linkMap, ok := rawLink.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("Error asserting link map from db")
			}
			link := &model.Link{}
			err := link.FromMap(linkMap)
			if err != nil {
				return nil, err
			}
			links = append(links, link)
		}
	}

	collaborators := []*model.Collaborator{}
	if rawCollabs, ok := c.Collaborators[collaboratorsPayloadKey].([]interface{}); ok {
		for _, rawCollab := range rawCollabs {
			collabMap, ok := rawCollab.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("Error asserting collaborator map from db")
			}
			collaborator := &model.Collaborator{}
			err := collaborator.FromMap(collabMap)
			if err != nil {
				return nil, err
			}
			collaborators = append(collaborators, collaborator)
		}
	}

	return model.NewContribution(&model.ContributionParams{
		ID:                c.ContributionID,
		Title:             c.Title,
		Abstract:          c.Abstract,
		Content:           c.Content,
		AuthorID:          c.AuthorID,
		AuthorName:        c.AuthorName,
		Tags:              StringToListString(c.Tags),
		Links:             links,
		Collaborators:     collaborators,
		Status:            model.ContributionStatus(c.Status),
		ReviewIDs:         StringToListString(c.ReviewIDs),
		VerificationProof: c.VerificationProof,
		CreatedDateTs:     c.CreatedDateTs,
		LastUpdatedDateTs: c.LastUpdatedDateTs,
	}), nil
}
