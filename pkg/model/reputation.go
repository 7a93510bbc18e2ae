package model // import "github.com/openscholar/contribution-processor/pkg/model"

// ScoreCategory specifies the kind of scoring event applied to a reputation
// record. Categories are a closed set so scoring rules stay exhaustively
// checkable.
type ScoreCategory int

const (
	// ScoreCategoryInvalid is an invalid category value
	ScoreCategoryInvalid ScoreCategory = iota

	// ScoreCategoryPaper is credit for submitting a contribution
	ScoreCategoryPaper

	// ScoreCategoryReview is credit for submitting a peer review
	ScoreCategoryReview

	// ScoreCategoryCollaboration is credit for being listed as a collaborator
	ScoreCategoryCollaboration

	// ScoreCategoryUpvote is credit for receiving an upvote on a review
	ScoreCategoryUpvote

	// ScoreCategoryVerification is credit for a verified credential
	ScoreCategoryVerification

	// ScoreCategoryNomination is credit for being nominated by a peer
	ScoreCategoryNomination
)

var scoreCategoryNames = map[ScoreCategory]string{
	ScoreCategoryPaper:         "paper",
	ScoreCategoryReview:        "review",
	ScoreCategoryCollaboration: "collaboration",
	ScoreCategoryUpvote:        "upvote",
	ScoreCategoryVerification:  "verification",
	ScoreCategoryNomination:    "nomination",
}

// ScoreCategoryFromName maps valid category names to the categories above
var ScoreCategoryFromName = map[string]ScoreCategory{
	"paper":         ScoreCategoryPaper,
	"review":        ScoreCategoryReview,
	"collaboration": ScoreCategoryCollaboration,
	"upvote":        ScoreCategoryUpvote,
	"verification":  ScoreCategoryVerification,
	"nomination":    ScoreCategoryNomination,
}

// Name returns the string name for the category
func (s ScoreCategory) Name() string {
	return scoreCategoryNames[s]
}

// CategoryScore tracks the number of scoring events and the accumulated
// score for one category on a reputation record
type CategoryScore struct {
	count int

	score int
}

// Count returns the number of scoring events recorded for the category
func (c *CategoryScore) Count() int {
	return c.count
}

// Score returns the accumulated score for the category
func (c *CategoryScore) Score() int {
	return c.score
}

// AsMap converts the CategoryScore to its map representation
func (c *CategoryScore) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"count": c.count,
		"score": c.score,
	}
}

// FromMap populates the CategoryScore from its map representation
func (c *CategoryScore) FromMap(scoreMap map[string]interface{}) error {
	if count, ok := scoreMap["count"]; ok {
		c.count = numToInt(count)
	}
	if score, ok := scoreMap["score"]; ok {
		c.score = numToInt(score)
	}
	return nil
}

// BadgeParams are the params to initialize a new Badge
type BadgeParams struct {
	BadgeID     string
	Name        string
	Description string
	Proof       string
	AwardedTs   int64
}

// NewBadge is a convenience method to init a Badge struct
func NewBadge(params *BadgeParams) *Badge {
	return &Badge{
		badgeID:     params.BadgeID,
		name:        params.Name,
		description: params.Description,
		proof:       params.Proof,
		awardedTs:   params.AwardedTs,
	}
}

// Badge is a named recognition record attached to an identity's reputation
type Badge struct {
	badgeID string

	name string

	description string

	proof string

	awardedTs int64
}

// BadgeID returns the id of the badge
func (b *Badge) BadgeID() string {
	return b.badgeID
}

// Name returns the display name of the badge
func (b *Badge) Name() string {
	return b.name
}

// Description returns the description of the badge
func (b *Badge) Description() string {
	return b.description
}

// Proof returns the proof token generated when the badge was awarded
func (b *Badge) Proof() string {
	return b.proof
}

// AwardedTs returns the timestamp the badge was awarded
func (b *Badge) AwardedTs() int64 {
	return b.awardedTs
}

// AsMap converts the Badge to its map representation
func (b *Badge) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"badgeId":     b.badgeID,
		"name":        b.name,
		"description": b.description,
		"proof":       b.proof,
		"awardedTs":   b.awardedTs,
	}
}

// FromMap populates the Badge from its map representation
func (b *Badge) FromMap(badgeMap map[string]interface{}) error {
	if badgeID, ok := badgeMap["badgeId"]; ok {
		b.badgeID = badgeID.(string)
	}
	if name, ok := badgeMap["name"]; ok {
		b.name = name.(string)
	}
	if description, ok := badgeMap["description"]; ok {
		b.description = description.(string)
	}
	if proof, ok := badgeMap["proof"]; ok {
		b.proof = proof.(string)
	}
	if awardedTs, ok := badgeMap["awardedTs"]; ok {
		b.awardedTs = numToInt64(awardedTs)
	}
	return nil
}

// CredentialParams are the params to initialize a new Credential
type CredentialParams struct {
	CredentialType string
	Institution    string
	Proof          string
	VerifiedTs     int64
}

// NewCredential is a convenience method to init a Credential struct
func NewCredential(params *CredentialParams) *Credential {
	return &Credential{
		credentialType: params.CredentialType,
		institution:    params.Institution,
		proof:          params.Proof,
		verifiedTs:     params.VerifiedTs,
	}
}

// Credential is a verified credential record on an identity's reputation,
// ex. an institutional affiliation
type Credential struct {
	credentialType string

	institution string

	proof string

	verifiedTs int64
}

// CredentialType returns the type of the verified credential
func (c *Credential) CredentialType() string {
	return c.credentialType
}

// Institution returns the institution for the credential, if any
func (c *Credential) Institution() string {
	return c.institution
}

// Proof returns the proof token generated at verification time
func (c *Credential) Proof() string {
	return c.proof
}

// VerifiedTs returns the timestamp the credential was verified
func (c *Credential) VerifiedTs() int64 {
	return c.verifiedTs
}

// AsMap converts the Credential to its map representation
func (c *Credential) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"credentialType": c.credentialType,
		"institution":    c.institution,
		"proof":          c.proof,
		"verifiedTs":     c.verifiedTs,
	}
}

// FromMap populates the Credential from its map representation
func (c *Credential) FromMap(credMap map[string]interface{}) error {
	if credentialType, ok := credMap["credentialType"]; ok {
		c.credentialType = credentialType.(string)
	}
	if institution, ok := credMap["institution"]; ok {
		c.institution = institution.(string)
	}
	if proof, ok := credMap["proof"]; ok {
		c.proof = proof.(string)
	}
	if verifiedTs, ok := credMap["verifiedTs"]; ok {
		c.verifiedTs = numToInt64(verifiedTs)
	}
	return nil
}

// ReputationParams are the params to initialize a new ReputationRecord
type ReputationParams struct {
	IdentityID        string
	Score             int
	Specializations   map[string]int
	Categories        map[ScoreCategory]*CategoryScore
	Badges            []*Badge
	Credentials       []*Credential
	LastUpdatedDateTs int64
}

// NewReputationRecord is a convenience method to init a ReputationRecord
func NewReputationRecord(params *ReputationParams) *ReputationRecord {
	specializations := params.Specializations
	if specializations == nil {
		specializations = map[string]int{}
	}
	categories := params.Categories
	if categories == nil {
		categories = map[ScoreCategory]*CategoryScore{}
	}
	return &ReputationRecord{
		identityID:        params.IdentityID,
		score:             params.Score,
		specializations:   specializations,
		categories:        categories,
		badges:            params.Badges,
		credentials:       params.Credentials,
		lastUpdatedDateTs: params.LastUpdatedDateTs,
	}
}

// EmptyReputationRecord returns a zero-valued record for an identity that
// has not had a scoring event yet
func EmptyReputationRecord(identityID string) *ReputationRecord {
	return NewReputationRecord(&ReputationParams{IdentityID: identityID})
}

// ReputationRecord holds the cumulative reputation state for one identity.
// Records are created lazily on the first scoring event and never destroyed.
type ReputationRecord struct {
	identityID string

	// Aggregate point total. Not clamped at zero; see ApplyCredit.
	score int

	// Reputation subtotals per topical field
	specializations map[string]int

	// Per-category event counts and score subtotals
	categories map[ScoreCategory]*CategoryScore

	badges []*Badge

	credentials []*Credential

	lastUpdatedDateTs int64
}

// IdentityID returns the identity id the record belongs to
func (r *ReputationRecord) IdentityID() string {
	return r.identityID
}

// Score returns the aggregate reputation point total
func (r *ReputationRecord) Score() int {
	return r.score
}

// Specializations returns the per-field reputation subtotals
func (r *ReputationRecord) Specializations() map[string]int {
	return r.specializations
}

// Categories returns the per-category counts and score subtotals
func (r *ReputationRecord) Categories() map[ScoreCategory]*CategoryScore {
	return r.categories
}

// CategoryScore returns the count/score entry for a category, nil if the
// category has no events yet
func (r *ReputationRecord) CategoryScore(category ScoreCategory) *CategoryScore {
	return r.categories[category]
}

// Badges returns the badges awarded to the identity
func (r *ReputationRecord) Badges() []*Badge {
	return r.badges
}

// HasBadge returns true if a badge with the given id has been awarded
func (r *ReputationRecord) HasBadge(badgeID string) bool {
	for _, badge := range r.badges {
		if badge.BadgeID() == badgeID {
			return true
		}
	}
	return false
}

// AddBadge appends a badge to the record
func (r *ReputationRecord) AddBadge(badge *Badge) {
	r.badges = append(r.badges, badge)
}

// Credentials returns the verified credentials on the record
func (r *ReputationRecord) Credentials() []*Credential {
	return r.credentials
}

// AddCredential appends a verified credential to the record
func (r *ReputationRecord) AddCredential(credential *Credential) {
	r.credentials = append(r.credentials, credential)
}

// ApplyCredit adds amount to the aggregate score, upserts the field
// specialization subtotal when a field is given, and upserts the category
// count/score entry. The aggregate score is intentionally not floored at
// zero; callers that want a floor enforce it as policy.
func (r *ReputationRecord) ApplyCredit(amount int, category ScoreCategory, field string) {
	r.score += amount
	if field != "" {
		r.specializations[field] += amount
	}
	entry, ok := r.categories[category]
	if !ok {
		entry = &CategoryScore{}
		r.categories[category] = entry
	}
	entry.count++
	entry.score += amount
}

// LastUpdatedDateTs returns the timestamp of the last update to the record
func (r *ReputationRecord) LastUpdatedDateTs() int64 {
	return r.lastUpdatedDateTs
}

// SetLastUpdatedDateTs updates the timestamp of the last update
func (r *ReputationRecord) SetLastUpdatedDateTs(ts int64) {
	r.lastUpdatedDateTs = ts
}
