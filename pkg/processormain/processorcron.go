package processormain

import (
	"os"
	"runtime"
	"time"

	log "github.com/golang/glog"

	"github.com/robfig/cron"

	"github.com/openscholar/contribution-processor/pkg/processor"
	"github.com/openscholar/contribution-processor/pkg/utils"
)

const (
	checkRunSecs = 5
)

func checkCron(cr *cron.Cron) {
	entries := cr.Entries()
	for _, entry := range entries {
		log.Infof("Proc run times: prev: %v, next: %v\n", entry.Prev, entry.Next)
	}
}

func runProcessorCron(proc *processor.Processor, persisters *InitializedPersisters) {
	lastTs, err := persisters.Cron.TimestampOfLastEventForCron()
	if err != nil {
		log.Errorf("Error getting last run timestamp: %v", err)
		return
	}
	log.Infof("Reconciling contribution statuses, last run: %v", lastTs)

	err = proc.Reconcile()
	if err != nil {
		log.Errorf("Error reconciling contributions: err: %v", err)
		return
	}

	err = persisters.Cron.UpdateTimestampForCron(utils.CurrentEpochSecsInInt64())
	if err != nil {
		log.Errorf("Error saving last run timestamp: err: %v", err)
		return
	}

	log.Infof("Done running processor: %v", runtime.NumGoroutine())
}

// ProcessorCronMain contains the logic to run the processor using a cronjob
func ProcessorCronMain(config *utils.ProcessorConfig, persisters *InitializedPersisters) {
	proc, err := BuildProcessor(config, persisters)
	if err != nil {
		log.Errorf("Error building processor: err: %v", err)
		os.Exit(1)
	}

	cr := cron.New()
	err = cr.AddFunc(config.CronConfig, func() { runProcessorCron(proc, persisters) })
	if err != nil {
		log.Errorf("Error starting: err: %v", err)
		os.Exit(1)
	}
	cr.Start()

	// Blocks here while the cron process runs
	for range time.After(checkRunSecs * time.Second) {
		checkCron(cr)
	}
}
