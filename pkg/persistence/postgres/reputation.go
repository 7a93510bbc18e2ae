package postgres // import "github.com/openscholar/contribution-processor/pkg/persistence/postgres"

import (
	"fmt"

	"github.com/openscholar/contribution-processor/pkg/model"
)

const (
	defaultReputationTableName = "reputation"

	badgesPayloadKey      = "badges"
	credentialsPayloadKey = "credentials"
)

// CreateReputationTableQuery returns the query to create the reputation
// table
func CreateReputationTableQuery() string {
	return CreateReputationTableQueryString(defaultReputationTableName)
}

// CreateReputationTableQueryString returns the query to create this table
func CreateReputationTableQueryString(tableName string) string {
	queryString := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s(
			identity_id TEXT PRIMARY KEY,
			score BIGINT,
			specializations JSONB,
			categories JSONB,
			badges JSONB,
			credentials JSONB,
			last_updated_timestamp BIGINT
		);
	`, tableName)
	return queryString
}

// NewReputation creates a new postgres Reputation from a
// model.ReputationRecord
func NewReputation(record *model.ReputationRecord) *Reputation {
	dbReputation := &Reputation{}
	dbReputation.IdentityID = record.IdentityID()
	dbReputation.Score = record.Score()
	dbReputation.LastUpdatedDateTs = record.LastUpdatedDateTs()

	dbReputation.Specializations = make(JsonbPayload)
	for field, score := range record.Specializations() {
		dbReputation.Specializations[field] = score
	}

	dbReputation.Categories = make(JsonbPayload)
	for category, entry := range record.Categories() {
		dbReputation.Categories[category.Name()] = entry.AsMap()
	}

	dbReputation.Badges = make(JsonbPayload)
	badges := make([]interface{}, len(record.Badges()))
	for i, badge := range record.Badges() {
		badges[i] = badge.AsMap()
	}
	dbReputation.Badges[badgesPayloadKey] = badges

	dbReputation.Credentials = make(JsonbPayload)
	credentials := make([]interface{}, len(record.Credentials()))
	for i, credential := range record.Credentials() {
		credentials[i] = credential.AsMap()
	}
	dbReputation.Credentials[credentialsPayloadKey] = credentials

	return dbReputation
}

// Reputation is the postgres definition of a model.ReputationRecord
type Reputation struct {
	IdentityID string `db:"identity_id"`

	Score int `db:"score"`

	Specializations JsonbPayload `db:"specializations"`

	Categories JsonbPayload `db:"categories"`

	Badges JsonbPayload `db:"badges"`

	Credentials JsonbPayload `db:"credentials"`

	LastUpdatedDateTs int64 `db:"last_updated_timestamp"`
}

// DbToReputationData creates a model.ReputationRecord from a postgres
// Reputation
func (r *Reputation) DbToReputationData() (*model.ReputationRecord, error) {
	specializations := map[string]int{}
	for field, rawScore := range r.Specializations {
		switch score := rawScore.(type) {
		case float64:
			specializations[field] = int(score)
		case int64:
			specializations[field] = int(score)
		case int:
			specializations[field] = score
		default:
			return nil, fmt.Errorf("Error asserting specialization score from db")
		}
	}

	categories := map[model.ScoreCategory]*model.CategoryScore{}
	for name, rawEntry := range r.Categories {
		category, ok := model.ScoreCategoryFromName[name]
		if !ok {
			return nil, fmt.Errorf("Unknown score category from db: %v", name)
		}
		entryMap, ok := rawEntry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("Error asserting category entry map from db")
		}
		entry := &model.CategoryScore{}
		err := entry.FromMap(entryMap)
		if err != nil {
			return nil, err
		}
		categories[category] = entry
	}

	badges := []*model.Badge{}
	if rawBadges, ok := r.Badges[badgesPayloadKey].([]interface{}); ok {
		for _, rawBadge := range rawBadges {
			badgeMap, ok := rawBadge.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("Error asserting badge map from db")
			}
			badge := &model.Badge{}
			err := badge.FromMap(badgeMap)
			if err != nil {
				return nil, err
			}
			badges = append(badges, badge)
		}
	}

	credentials := []*model.Credential{}
	if rawCredentials, ok := r.Credentials[credentialsPayloadKey].([]interface{}); ok {
		for _, rawCredential := range rawCredentials {
			credentialMap, ok := rawCredential.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("Error asserting credential map from db")
			}
			credential := &model.Credential{}
			err := credential.FromMap(credentialMap)
			if err != nil {
				return nil, err
			}
			credentials = append(credentials, credential)
		}
	}

	return model.NewReputationRecord(&model.ReputationParams{
		IdentityID:        r.IdentityID,
		Score:             r.Score,
		Specializations:   specializations,
		Categories:        categories,
		Badges:            badges,
		Credentials:       credentials,
		LastUpdatedDateTs: r.LastUpdatedDateTs,
	}), nil
}
