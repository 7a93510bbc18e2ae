package processormain

import (
	log "github.com/golang/glog"

	"github.com/openscholar/contribution-processor/pkg/helpers"
	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/processor"
	"github.com/openscholar/contribution-processor/pkg/pubsub"
	"github.com/openscholar/contribution-processor/pkg/utils"
)

// InitializedPersisters contains initialized persisters needed to run processor
type InitializedPersisters struct {
	Cron             model.CronPersister
	Contribution     model.ContributionPersister
	Review           model.ReviewPersister
	Reputation       model.ReputationPersister
	TokenTransaction model.TokenTransactionPersister
}

// InitPersisters inits the persisters from the config file
func InitPersisters(config *utils.ProcessorConfig) (*InitializedPersisters, error) {
	cronPersister, err := helpers.CronPersister(config)
	if err != nil {
		log.Errorf("Error getting the cron persister: %v", err)
		return nil, err
	}
	contributionPersister, err := helpers.ContributionPersister(config)
	if err != nil {
		log.Errorf("Error w contributionPersister: err: %v", err)
		return nil, err
	}
	reviewPersister, err := helpers.ReviewPersister(config)
	if err != nil {
		log.Errorf("Error w reviewPersister: err: %v", err)
		return nil, err
	}
	reputationPersister, err := helpers.ReputationPersister(config)
	if err != nil {
		log.Errorf("Error w reputationPersister: err: %v", err)
		return nil, err
	}
	tokenTransactionPersister, err := helpers.TokenTransactionPersister(config)
	if err != nil {
		log.Errorf("Error w tokenTransactionPersister: err: %v", err)
		return nil, err
	}
	return &InitializedPersisters{
		Cron:             cronPersister,
		Contribution:     contributionPersister,
		Review:           reviewPersister,
		Reputation:       reputationPersister,
		TokenTransaction: tokenTransactionPersister,
	}, nil
}

func initPubSubForActivity(config *utils.ProcessorConfig) (*pubsub.GooglePubSub, error) {
	// If no project ID, disable
	if config.PubSubProjectID == "" {
		return nil, nil
	}
	// If no activity topic name, disable
	if config.PubSubActivityTopic == "" {
		return nil, nil
	}

	ps, err := pubsub.NewGooglePubSub(config.PubSubProjectID)
	if err != nil {
		return nil, err
	}

	err = ps.StartPublishers()
	return ps, err
}

// BuildProcessor constructs the contribution processor from initialized
// persisters and config
func BuildProcessor(config *utils.ProcessorConfig,
	persisters *InitializedPersisters) (*processor.Processor, error) {
	ps, err := initPubSubForActivity(config)
	if err != nil {
		log.Errorf("Error initializing pubsub: err: %v", err)
		return nil, err
	}

	return processor.NewProcessor(&processor.NewProcessorParams{
		ContributionPersister:     persisters.Contribution,
		ReviewPersister:           persisters.Review,
		ReputationPersister:       persisters.Reputation,
		TokenTransactionPersister: persisters.TokenTransaction,
		GooglePubSub:              ps,
		GooglePubSubTopicName:     config.PubSubActivityTopic,
		PreventDuplicateBadges:    config.PreventDuplicateBadges,
	}), nil
}
