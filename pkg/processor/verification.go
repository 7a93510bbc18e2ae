package processor // import "github.com/openscholar/contribution-processor/pkg/processor"

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// VerifyContribution produces the content-derived verification proof token
// for a contribution. The token is computed from a stable serialization of
// the identity-stamped fields, so the same contribution snapshot always
// yields the same token. It is an opaque verified marker, not a
// cryptographic proof.
func VerifyContribution(contribution verifiableContribution) string {
	payload := fmt.Sprintf("%v|%v|%v|%v|%v",
		contribution.ID(),
		contribution.Title(),
		contribution.Abstract(),
		contribution.AuthorID(),
		contribution.CreatedDateTs(),
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

type verifiableContribution interface {
	ID() string
	Title() string
	Abstract() string
	AuthorID() string
	CreatedDateTs() int64
}
