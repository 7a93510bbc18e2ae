package processormain_test

import (
	"testing"

	"github.com/openscholar/contribution-processor/pkg/processormain"
	"github.com/openscholar/contribution-processor/pkg/utils"
)

func TestInitPersistersNone(t *testing.T) {
	config := &utils.ProcessorConfig{
		PersisterType: utils.PersisterTypeNone,
	}
	persisters, err := processormain.InitPersisters(config)
	if err != nil {
		t.Errorf("Error initializing persisters, err: %v", err)
	}
	if persisters.Cron == nil {
		t.Errorf("Should have initialized a cron persister")
	}
	if persisters.Contribution == nil {
		t.Errorf("Should have initialized a contribution persister")
	}
	if persisters.Review == nil {
		t.Errorf("Should have initialized a review persister")
	}
	if persisters.Reputation == nil {
		t.Errorf("Should have initialized a reputation persister")
	}
	if persisters.TokenTransaction == nil {
		t.Errorf("Should have initialized a token transaction persister")
	}
}

func TestBuildProcessor(t *testing.T) {
	config := &utils.ProcessorConfig{
		PersisterType: utils.PersisterTypeNone,
	}
	persisters, err := processormain.InitPersisters(config)
	if err != nil {
		t.Errorf("Error initializing persisters, err: %v", err)
	}
	proc, err := processormain.BuildProcessor(config, persisters)
	if err != nil {
		t.Errorf("Error building processor, err: %v", err)
	}
	if proc == nil {
		t.Errorf("Should have built a processor")
	}
}
