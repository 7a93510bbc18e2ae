package processor // import "github.com/openscholar/contribution-processor/pkg/processor"

import (
	"encoding/json"

	log "github.com/golang/glog"

	"github.com/openscholar/contribution-processor/pkg/pubsub"
	"github.com/openscholar/contribution-processor/pkg/utils"
)

// Event types mirrored to the external network sync layer
const (
	propagationEventContributionCreated = "contribution-created"
	propagationEventReviewSubmitted     = "review-submitted"
	propagationEventReviewVoted         = "review-voted"
	propagationEventCredentialVerified  = "credential-verified"
	propagationEventBadgeAwarded        = "badge-awarded"
	propagationEventTokensTransferred   = "tokens-transferred"
)

// PropagationMessage is the payload mirrored outward after a state changing
// operation
type PropagationMessage struct {
	EventType      string `json:"eventType"`
	ContributionID string `json:"contributionId,omitempty"`
	IdentityID     string `json:"identityId,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

// propagate notifies the external sync layer of a state changing operation.
// Fire and forget: failures are logged and never surfaced to the caller.
func (p *Processor) propagate(eventType string, contributionID string, identityID string) {
	if p.googlePubSub == nil || p.googlePubSubTopicName == "" {
		return
	}

	msg := &PropagationMessage{
		EventType:      eventType,
		ContributionID: contributionID,
		IdentityID:     identityID,
		Timestamp:      utils.CurrentEpochSecsInInt64(),
	}
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error building propagation payload: err: %v", err)
		return
	}

	err = p.googlePubSub.Publish(&pubsub.GooglePubSubMsg{
		Topic:   p.googlePubSubTopicName,
		Payload: string(msgBytes),
	})
	if err != nil {
		log.Errorf("Error publishing propagation message: err: %v", err)
	}
}
