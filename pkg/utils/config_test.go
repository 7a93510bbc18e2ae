// Package utils_test contains tests for the config utils
package utils_test

import (
	"os"
	"testing"

	"github.com/openscholar/contribution-processor/pkg/utils"
)

func TestProcessorConfig(t *testing.T) {
	os.Setenv(
		"PROCESSOR_CRON_CONFIG",
		"* * * * *",
	)
	os.Setenv(
		"PROCESSOR_PERSISTER_TYPE_NAME",
		"postgresql",
	)
	os.Setenv(
		"PROCESSOR_PERSISTER_POSTGRES_ADDRESS",
		"localhost",
	)
	os.Setenv(
		"PROCESSOR_PERSISTER_POSTGRES_PORT",
		"5432",
	)
	os.Setenv(
		"PROCESSOR_PERSISTER_POSTGRES_DBNAME",
		"contribution_processor",
	)
	config := &utils.ProcessorConfig{}
	err := config.PopulateFromEnv()
	if err != nil {
		t.Errorf("Failed to populate from environment: err: %v", err)
	}
	if config.PersisterType != utils.PersisterTypePostgresql {
		t.Errorf("Should have set the postgresql persister type")
	}
}

func TestBadPersisterNameProcessorConfig(t *testing.T) {
	os.Setenv(
		"PROCESSOR_CRON_CONFIG",
		"* * * * *",
	)
	os.Setenv(
		"PROCESSOR_PERSISTER_TYPE_NAME",
		"thisisnotarealpersister",
	)
	config := &utils.ProcessorConfig{}
	err := config.PopulateFromEnv()
	if err == nil {
		t.Errorf("Should have failed on an invalid persister name")
	}
}

func TestBadCronConfig(t *testing.T) {
	os.Setenv(
		"PROCESSOR_CRON_CONFIG",
		"not a cron string",
	)
	os.Setenv(
		"PROCESSOR_PERSISTER_TYPE_NAME",
		"none",
	)
	config := &utils.ProcessorConfig{}
	err := config.PopulateFromEnv()
	if err == nil {
		t.Errorf("Should have failed on an invalid cron config")
	}
}
