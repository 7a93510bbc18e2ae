package main

// This script audits the token ledger. It recomputes every identity balance
// from the append-only transaction log and reports identities whose derived
// balance has gone negative, along with any event hash that appears on more
// than one transaction. A duplicated event hash means a scoring credit was
// applied twice and the unique index on the column was not in place.

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/kelseyhightower/envconfig"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/persistence"
)

const (
	envVarPrefix = "ledgercheck"

	usageListFormat = `The ledgercheck script is configured via environment vars only. The following environment variables can be used:
{{range .}}
{{usage_key .}}
  [description] {{usage_description .}}
  [type]        {{usage_type .}}
  [default]     {{usage_default .}}
  [required]    {{usage_required .}}
{{end}}
`
)

// Config configures this script
type Config struct {
	Verbose                  bool   `split_words:"true" desc:"If set to true, dumps every suspect transaction"`
	PersisterPostgresAddress string `split_words:"true" required:"true" desc:"Sets the postgres address"`
	PersisterPostgresPort    int    `split_words:"true" required:"true" desc:"Sets the postgres port"`
	PersisterPostgresDbname  string `split_words:"true" required:"true" desc:"Sets the database name"`
	PersisterPostgresUser    string `split_words:"true" desc:"Sets the database user"`
	PersisterPostgresPw      string `split_words:"true" desc:"Sets the database password"`
}

// PopulateFromEnv processes the environment vars, populates Config
func (c *Config) PopulateFromEnv() error {
	return envconfig.Process(envVarPrefix, c)
}

// OutputUsage prints the usage string to os.Stdout
func (c *Config) OutputUsage() {
	tabs := tabwriter.NewWriter(os.Stdout, 1, 0, 4, ' ', 0)
	_ = envconfig.Usagef(envVarPrefix, c, tabs, usageListFormat) // nolint: gosec
	_ = tabs.Flush()                                             // nolint: gosec
}

func ledgerPersister(config *Config) (*persistence.PostgresPersister, error) {
	return persistence.NewPostgresPersister(
		config.PersisterPostgresAddress,
		config.PersisterPostgresPort,
		config.PersisterPostgresUser,
		config.PersisterPostgresPw,
		config.PersisterPostgresDbname,
	)
}

func run(config *Config) {
	persister, err := ledgerPersister(config)
	if err != nil {
		fmt.Printf("error with persister: err: %v\n", err)
		os.Exit(2)
	}

	transactions, err := persister.TokenTransactions()
	if err != nil {
		fmt.Printf("error retrieving transactions: err: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("found %v transactions in the ledger\n", len(transactions))

	balances := map[string]int64{}
	byEventHash := map[string][]*model.TokenTransaction{}
	for _, transaction := range transactions {
		balances[transaction.ToID()] += transaction.Amount()
		if transaction.FromID() != "" {
			balances[transaction.FromID()] -= transaction.Amount()
		}
		hash := transaction.EventHash()
		if hash != "" {
			byEventHash[hash] = append(byEventHash[hash], transaction)
		}
	}

	numNegative := 0
	for identityID, balance := range balances {
		if balance < 0 {
			numNegative++
			fmt.Printf("negative balance: identity: %v, balance: %v\n", identityID, balance)
		}
	}

	numDuplicated := 0
	for hash, withHash := range byEventHash {
		if len(withHash) > 1 {
			numDuplicated++
			fmt.Printf("duplicated event hash: %v on %v transactions\n", hash, len(withHash))
			if config.Verbose {
				spew.Dump(withHash)
			}
		}
	}

	fmt.Printf(
		"done: identities: %v, negative balances: %v, duplicated event hashes: %v\n",
		len(balances),
		numNegative,
		numDuplicated,
	)
	if numNegative > 0 || numDuplicated > 0 {
		os.Exit(1)
	}
}

func main() {
	config := &Config{}
	flag.Usage = func() {
		config.OutputUsage()
		os.Exit(0)
	}
	flag.Parse()

	err := config.PopulateFromEnv()
	if err != nil {
		config.OutputUsage()
		fmt.Printf("Invalid ledgercheck config: err: %v\n", err)
		os.Exit(2)
	}

	run(config)
}
