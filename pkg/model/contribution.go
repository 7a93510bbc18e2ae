// Package model contains the general data models and interfaces for the
// contribution processor.
package model // import "github.com/openscholar/contribution-processor/pkg/model"

// ContributionStatus specifies the current lifecycle state of a contribution
type ContributionStatus int

const (
	// ContributionStatusDraft is a contribution that has not been published
	// for review yet
	ContributionStatusDraft ContributionStatus = iota

	// ContributionStatusPublished is a contribution open for peer review
	ContributionStatusPublished

	// ContributionStatusPeerReviewed is a contribution that has received the
	// minimum number of peer reviews
	ContributionStatusPeerReviewed

	// ContributionStatusVerified is a contribution whose aggregate rating has
	// passed the quality threshold. This state is terminal.
	ContributionStatusVerified
)

var contributionStatusNames = map[ContributionStatus]string{
	ContributionStatusDraft:        "draft",
	ContributionStatusPublished:    "published",
	ContributionStatusPeerReviewed: "peer_reviewed",
	ContributionStatusVerified:     "verified",
}

// ContributionStatusFromName maps valid status names to the statuses above
var ContributionStatusFromName = map[string]ContributionStatus{
	"draft":         ContributionStatusDraft,
	"published":     ContributionStatusPublished,
	"peer_reviewed": ContributionStatusPeerReviewed,
	"verified":      ContributionStatusVerified,
}

// Name returns the string name for the status
func (s ContributionStatus) Name() string {
	return contributionStatusNames[s]
}

// LinkParams are the params to initialize a new Link
type LinkParams struct {
	Kind string
	URL  string
	Note string
}

// NewLink is a convenience method to init a Link struct
func NewLink(params *LinkParams) *Link {
	return &Link{
		kind: params.Kind,
		url:  params.URL,
		note: params.Note,
	}
}

// Link is an external resource attached to a contribution, ex. a dataset or
// a preprint location
type Link struct {
	kind string

	url string

	note string
}

// Kind returns the kind label of the link
func (l *Link) Kind() string {
	return l.kind
}

// URL returns the link location
func (l *Link) URL() string {
	return l.url
}

// Note returns the free-form note on the link
func (l *Link) Note() string {
	return l.note
}

// AsMap converts the Link to its map representation
func (l *Link) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"kind": l.kind,
		"url":  l.url,
		"note": l.note,
	}
}

// FromMap populates the Link from its map representation
func (l *Link) FromMap(linkMap map[string]interface{}) error {
	if kind, ok := linkMap["kind"]; ok {
		l.kind = kind.(string)
	}
	if url, ok := linkMap["url"]; ok {
		l.url = url.(string)
	}
	if note, ok := linkMap["note"]; ok {
		l.note = note.(string)
	}
	return nil
}

// CollaboratorParams are the params to initialize a new Collaborator
type CollaboratorParams struct {
	IdentityID string
	Role       string
}

// NewCollaborator is a convenience method to init a Collaborator struct
func NewCollaborator(params *CollaboratorParams) *Collaborator {
	return &Collaborator{
		identityID: params.IdentityID,
		role:       params.Role,
	}
}

// Collaborator is a non-author identity credited on a contribution
type Collaborator struct {
	identityID string

	role string
}

// IdentityID returns the identity id of the collaborator
func (c *Collaborator) IdentityID() string {
	return c.identityID
}

// Role returns the role of the collaborator on the contribution
func (c *Collaborator) Role() string {
	return c.role
}

// AsMap converts the Collaborator to its map representation
func (c *Collaborator) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"identityId": c.identityID,
		"role":       c.role,
	}
}

// FromMap populates the Collaborator from its map representation
func (c *Collaborator) FromMap(collabMap map[string]interface{}) error {
	if identityID, ok := collabMap["identityId"]; ok {
		c.identityID = identityID.(string)
	}
	if role, ok := collabMap["role"]; ok {
		c.role = role.(string)
	}
	return nil
}

// ContributionParams are the params to initialize a new Contribution
type ContributionParams struct {
	ID                string
	Title             string
	Abstract          string
	Content           string
	AuthorID          string
	AuthorName        string
	Tags              []string
	Links             []*Link
	Collaborators     []*Collaborator
	Status            ContributionStatus
	ReviewIDs         []string
	VerificationProof string
	CreatedDateTs     int64
	LastUpdatedDateTs int64
}

// NewContribution is a convenience method to init a Contribution struct
func NewContribution(params *ContributionParams) *Contribution {
	return &Contribution{
		id:                params.ID,
		title:             params.Title,
		abstract:          params.Abstract,
		content:           params.Content,
		authorID:          params.AuthorID,
		authorName:        params.AuthorName,
		tags:              params.Tags,
		links:             params.Links,
		collaborators:     params.Collaborators,
		status:            params.Status,
		reviewIDs:         params.ReviewIDs,
		verificationProof: params.VerificationProof,
		createdDateTs:     params.CreatedDateTs,
		lastUpdatedDateTs: params.LastUpdatedDateTs,
	}
}

// Contribution represents a submitted research artifact subject to peer
// review. Contributions are never deleted, only status-advanced.
type Contribution struct {
	id string

	title string

	abstract string

	content string

	// The identity id of the submitting author
	authorID string

	// Denormalized display name for the author
	authorName string

	tags []string

	links []*Link

	collaborators []*Collaborator

	status ContributionStatus

	// Ordered ids of the reviews recorded against this contribution
	reviewIDs []string

	// Content-derived proof token, empty until the contribution is verified
	verificationProof string

	createdDateTs int64

	lastUpdatedDateTs int64
}

// ID returns the id of the contribution
func (c *Contribution) ID() string {
	return c.id
}

// Title returns the title of the contribution
func (c *Contribution) Title() string {
	return c.title
}

// Abstract returns the abstract of the contribution
func (c *Contribution) Abstract() string {
	return c.abstract
}

// Content returns the full content body of the contribution
func (c *Contribution) Content() string {
	return c.content
}

// AuthorID returns the identity id of the submitting author
func (c *Contribution) AuthorID() string {
	return c.authorID
}

// AuthorName returns the denormalized display name of the author
func (c *Contribution) AuthorName() string {
	return c.authorName
}

// Tags returns the topical tags on the contribution
func (c *Contribution) Tags() []string {
	return c.tags
}

// PrimaryTag returns the first tag on the contribution, used as the
// specialization field for scoring. Returns empty string if untagged.
func (c *Contribution) PrimaryTag() string {
	if len(c.tags) == 0 {
		return ""
	}
	return c.tags[0]
}

// Links returns the external links attached to the contribution
func (c *Contribution) Links() []*Link {
	return c.links
}

// Collaborators returns the collaborators credited on the contribution
func (c *Contribution) Collaborators() []*Collaborator {
	return c.collaborators
}

// Status returns the current lifecycle status of the contribution
func (c *Contribution) Status() ContributionStatus {
	return c.status
}

// SetStatus updates the lifecycle status of the contribution
func (c *Contribution) SetStatus(status ContributionStatus) {
	c.status = status
}

// ReviewIDs returns the ordered review ids recorded against the contribution
func (c *Contribution) ReviewIDs() []string {
	return c.reviewIDs
}

// AddReviewID appends a review id to the contribution's review list
func (c *Contribution) AddReviewID(reviewID string) {
	c.reviewIDs = append(c.reviewIDs, reviewID)
}

// VerificationProof returns the proof token, empty if not verified
func (c *Contribution) VerificationProof() string {
	return c.verificationProof
}

// SetVerificationProof sets the proof token for a verified contribution
func (c *Contribution) SetVerificationProof(proof string) {
	c.verificationProof = proof
}

// CreatedDateTs returns the timestamp of the contribution submission
func (c *Contribution) CreatedDateTs() int64 {
	return c.createdDateTs
}

// LastUpdatedDateTs returns the timestamp of the last update to the contribution
func (c *Contribution) LastUpdatedDateTs() int64 {
	return c.lastUpdatedDateTs
}

// SetLastUpdatedDateTs updates the timestamp of the last update
func (c *Contribution) SetLastUpdatedDateTs(ts int64) {
	c.lastUpdatedDateTs = ts
}
