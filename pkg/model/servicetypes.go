package model // import "github.com/openscholar/contribution-processor/pkg/model"

// IdentityResolver resolves an identity id to a display name for
// denormalized display fields. Resolution failures must not block core
// operations; callers fall back to a generated placeholder label.
type IdentityResolver interface {
	// DisplayName returns the display name for an identity id
	DisplayName(identityID string) (string, error)
}
