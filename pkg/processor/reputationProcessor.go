package processor // import "github.com/openscholar/contribution-processor/pkg/processor"

import (
	log "github.com/golang/glog"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/persistence"
	"github.com/openscholar/contribution-processor/pkg/utils"
)

// Field names on the reputation record models passed to the persister on
// updates
const (
	scoreFieldName             = "Score"
	specializationsFieldName   = "Specializations"
	categoriesFieldName        = "Categories"
	badgesFieldName            = "Badges"
	credentialsFieldName       = "Credentials"
	repLastUpdatedFieldName    = "LastUpdatedDateTs"
	credentialTypeSelfAsserted = "self_asserted"
)

// NewReputationProcessor is a convenience function to init a
// ReputationProcessor
func NewReputationProcessor(reputationPersister model.ReputationPersister,
	preventDuplicateBadges bool) *ReputationProcessor {
	return &ReputationProcessor{
		reputationPersister:    reputationPersister,
		preventDuplicateBadges: preventDuplicateBadges,
	}
}

// ReputationProcessor owns the per-identity reputation records. Records are
// created lazily on the first scoring event and never destroyed.
type ReputationProcessor struct {
	reputationPersister model.ReputationPersister

	// When true, awarding a badge id the identity already holds is a no-op.
	// Off by default to preserve the platform's observed behavior.
	preventDuplicateBadges bool
}

// Reputation returns the identity's reputation record, or an empty record
// when the identity has no scoring events yet. Never returns a not-found
// error.
func (r *ReputationProcessor) Reputation(identityID string) (*model.ReputationRecord, error) {
	record, err := r.reputationPersister.ReputationByIdentity(identityID)
	if err != nil {
		if err == persistence.ErrPersisterNoResults {
			return model.EmptyReputationRecord(identityID), nil
		}
		return nil, err
	}
	return record, nil
}

// Credit is the sole mutator of reputation scores. It adds amount to the
// aggregate score, upserts the field specialization when a field is given,
// and upserts the category count/score entry.
func (r *ReputationProcessor) Credit(identityID string, amount int,
	category model.ScoreCategory, field string) (*model.ReputationRecord, error) {
	record, created, err := r.loadOrInitRecord(identityID)
	if err != nil {
		return nil, err
	}
	record.ApplyCredit(amount, category, field)
	record.SetLastUpdatedDateTs(utils.CurrentEpochSecsInInt64())
	err = r.saveRecord(record, created, []string{
		scoreFieldName,
		specializationsFieldName,
		categoriesFieldName,
		repLastUpdatedFieldName,
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Credited %v points to %v in category %v\n", amount, identityID,
		category.Name())
	return record, nil
}

// RecordVerification appends a verified credential to the identity's record
// and credits the verification score
func (r *ReputationProcessor) RecordVerification(identityID string,
	credentialType string, institution string) (*model.Credential, error) {
	if identityID == "" {
		return nil, &model.ValidationError{Field: "identityId", Message: "identity required"}
	}
	if credentialType == "" {
		credentialType = credentialTypeSelfAsserted
	}
	record, created, err := r.loadOrInitRecord(identityID)
	if err != nil {
		return nil, err
	}
	proof, err := utils.NewProofToken()
	if err != nil {
		return nil, err
	}
	credential := model.NewCredential(&model.CredentialParams{
		CredentialType: credentialType,
		Institution:    institution,
		Proof:          proof,
		VerifiedTs:     utils.CurrentEpochSecsInInt64(),
	})
	record.AddCredential(credential)
	record.ApplyCredit(credentialRepPoints, model.ScoreCategoryVerification, "")
	record.SetLastUpdatedDateTs(utils.CurrentEpochSecsInInt64())
	err = r.saveRecord(record, created, []string{
		scoreFieldName,
		specializationsFieldName,
		categoriesFieldName,
		credentialsFieldName,
		repLastUpdatedFieldName,
	})
	if err != nil {
		return nil, err
	}
	return credential, nil
}

// AwardBadge appends a badge to the identity's record. Duplicate badge ids
// are allowed unless duplicate prevention is enabled as policy.
func (r *ReputationProcessor) AwardBadge(identityID string, badgeID string,
	name string, description string) (*model.Badge, error) {
	if identityID == "" {
		return nil, &model.ValidationError{Field: "identityId", Message: "identity required"}
	}
	if badgeID == "" || name == "" {
		return nil, &model.ValidationError{Field: "badgeId", Message: "badge id and name required"}
	}
	record, created, err := r.loadOrInitRecord(identityID)
	if err != nil {
		return nil, err
	}
	if r.preventDuplicateBadges && record.HasBadge(badgeID) {
		log.Infof("Identity %v already holds badge %v, skipping\n", identityID, badgeID)
		return nil, nil
	}
	proof, err := utils.NewProofToken()
	if err != nil {
		return nil, err
	}
	badge := model.NewBadge(&model.BadgeParams{
		BadgeID:     badgeID,
		Name:        name,
		Description: description,
		Proof:       proof,
		AwardedTs:   utils.CurrentEpochSecsInInt64(),
	})
	record.AddBadge(badge)
	record.SetLastUpdatedDateTs(utils.CurrentEpochSecsInInt64())
	err = r.saveRecord(record, created, []string{
		badgesFieldName,
		repLastUpdatedFieldName,
	})
	if err != nil {
		return nil, err
	}
	return badge, nil
}

func (r *ReputationProcessor) loadOrInitRecord(identityID string) (*model.ReputationRecord, bool, error) {
	record, err := r.reputationPersister.ReputationByIdentity(identityID)
	if err == nil {
		return record, false, nil
	}
	if err == persistence.ErrPersisterNoResults {
		return model.EmptyReputationRecord(identityID), true, nil
	}
	return nil, false, err
}

func (r *ReputationProcessor) saveRecord(record *model.ReputationRecord,
	created bool, updatedFields []string) error {
	if created {
		return r.reputationPersister.CreateReputation(record)
	}
	return r.reputationPersister.UpdateReputation(record, updatedFields)
}
