// Package helpers contains various common helper functions.
// Normally they are shared functions used by the cmds.
package helpers

import (
	"github.com/jmoiron/sqlx"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/persistence"
	"github.com/openscholar/contribution-processor/pkg/utils"
)

// Persister is a helper function to return an interface{} that is a initialized
// persister type
func Persister(config *utils.ProcessorConfig) (interface{}, error) {
	if config.PersisterType == utils.PersisterTypePostgresql {
		return postgresPersister(config)
	}
	// Default to the NullPersister
	return &persistence.NullPersister{}, nil
}

// PersisterFromSqlx is a helper function to return an interface{} given an
// initialized sqlx.DB struct
func PersisterFromSqlx(db *sqlx.DB) (interface{}, error) {
	persister, err := persistence.NewPostgresPersisterFromSqlx(db)
	if err != nil {
		return nil, err
	}

	err = initTablesAndIndices(persister)
	if err != nil {
		return nil, err
	}

	return persister, nil
}

// CronPersister is a helper function to return the correct cron persister based on
// the given configuration
func CronPersister(config *utils.ProcessorConfig) (model.CronPersister, error) {
	p, err := Persister(config)
	if err != nil {
		return nil, err
	}
	return p.(model.CronPersister), nil
}

// ContributionPersister is a helper function to return the correct contribution persister
// based on the given configuration
func ContributionPersister(config *utils.ProcessorConfig) (model.ContributionPersister, error) {
	p, err := Persister(config)
	if err != nil {
		return nil, err
	}
	return p.(model.ContributionPersister), nil
}

// ReviewPersister is a helper function to return the correct review persister based on
// the given configuration
func ReviewPersister(config *utils.ProcessorConfig) (model.ReviewPersister, error) {
	p, err := Persister(config)
	if err != nil {
		return nil, err
	}
	return p.(model.ReviewPersister), nil
}

// ReputationPersister is a helper function to return the correct reputation persister
// based on the given configuration
func ReputationPersister(config *utils.ProcessorConfig) (model.ReputationPersister, error) {
	p, err := Persister(config)
	if err != nil {
		return nil, err
	}
	return p.(model.ReputationPersister), nil
}

// TokenTransactionPersister is a helper function to return the correct token transaction
// persister based on the given configuration
func TokenTransactionPersister(config *utils.ProcessorConfig) (model.TokenTransactionPersister, error) {
	p, err := Persister(config)
	if err != nil {
		return nil, err
	}
	return p.(model.TokenTransactionPersister), nil
}

func postgresPersister(config *utils.ProcessorConfig) (*persistence.PostgresPersister, error) {
	persister, err := persistence.NewPostgresPersister(
		config.PersisterPostgresAddress,
		config.PersisterPostgresPort,
		config.PersisterPostgresUser,
		config.PersisterPostgresPw,
		config.PersisterPostgresDbname,
	)
	if err != nil {
		return nil, err
	}
	err = initTablesAndIndices(persister)
	if err != nil {
		return nil, err
	}

	return persister, nil
}

func initTablesAndIndices(persister *persistence.PostgresPersister) error {
	// Attempts to create all the necessary tables here
	err := persister.CreateTables()
	if err != nil {
		return err
	}
	// Attempts to create all the necessary table indices here
	err = persister.CreateIndices()
	if err != nil {
		return err
	}
	return nil
}
