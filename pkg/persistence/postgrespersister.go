// Package persistence contains components to interact with the DB
package persistence // import "github.com/openscholar/contribution-processor/pkg/persistence"

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	perrors "github.com/pkg/errors"

	// driver for postgresql
	_ "github.com/lib/pq"

	"github.com/openscholar/contribution-processor/pkg/model"
	"github.com/openscholar/contribution-processor/pkg/persistence/postgres"
)

const (
	contributionTableName     = "contribution"
	reviewTableName           = "review"
	reputationTableName       = "reputation"
	tokenTransactionTableName = "token_transaction"
	cronTableName             = "cron"
)

// NewPostgresPersister creates a new postgres persister
func NewPostgresPersister(host string, port int, user string, password string,
	dbname string) (*PostgresPersister, error) {
	pgPersister := &PostgresPersister{}
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
	db, err := sqlx.Connect("postgres", psqlInfo)
	if err != nil {
		return pgPersister, perrors.Wrap(err, "error connecting to sqlx")
	}
	pgPersister.db = db
	return pgPersister, nil
}

// NewPostgresPersisterFromSqlx creates a new postgres persister from an
// initialized sqlx.DB
func NewPostgresPersisterFromSqlx(db *sqlx.DB) (*PostgresPersister, error) {
	if db == nil {
		return nil, fmt.Errorf("Needs an initialized sqlx.DB")
	}
	return &PostgresPersister{db: db}, nil
}

// PostgresPersister holds the DB connection and persistence
type PostgresPersister struct {
	db *sqlx.DB
}

// CreateTables creates the tables for the processor if they don't exist
func (p *PostgresPersister) CreateTables() error {
	schemas := []string{
		postgres.CreateContributionTableQuery(),
		postgres.CreateReviewTableQuery(),
		postgres.CreateReputationTableQuery(),
		postgres.CreateTokenTransactionTableQuery(),
		postgres.CreateCronTableQuery(),
	}
	for _, schema := range schemas {
		_, err := p.db.Exec(schema)
		if err != nil {
			return perrors.Wrap(err, "error creating table in postgres")
		}
	}
	return nil
}

// CreateIndices creates the indices for the processor tables if they don't
// exist
func (p *PostgresPersister) CreateIndices() error {
	indices := []string{
		postgres.CreateContributionTableIndices(),
		postgres.CreateTokenTransactionTableIndices(),
	}
	for _, index := range indices {
		_, err := p.db.Exec(index)
		if err != nil {
			return perrors.Wrap(err, "error creating index in postgres")
		}
	}
	return nil
}

// ContributionByID retrieves a contribution by id
func (p *PostgresPersister) ContributionByID(contributionID string) (*model.Contribution, error) {
	dbContribution := postgres.Contribution{}
	queryString := p.contributionByIDQuery(contributionTableName)
	err := p.db.Get(&dbContribution, queryString, contributionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersisterNoResults
		}
		return nil, perrors.Wrap(err, "wasn't able to get contribution from postgres table")
	}
	return dbContribution.DbToContributionData()
}

// ContributionsByCriteria retrieves contributions matching the criteria,
// newest-first
func (p *PostgresPersister) ContributionsByCriteria(criteria *model.ContributionCriteria) ([]*model.Contribution, error) {
	queryString, args := p.contributionsByCriteriaQuery(contributionTableName, criteria)
	dbContributions := []postgres.Contribution{}
	err := p.db.Select(&dbContributions, queryString, args...)
	if err != nil {
		return nil, perrors.Wrap(err, "wasn't able to get contributions from postgres table")
	}
	contributions := make([]*model.Contribution, len(dbContributions))
	for index, dbContribution := range dbContributions {
		contribution, err := dbContribution.DbToContributionData()
		if err != nil {
			return nil, err
		}
		contributions[index] = contribution
	}
	return contributions, nil
}

// CreateContribution creates a new contribution
func (p *PostgresPersister) CreateContribution(contribution *model.Contribution) error {
	queryString := p.createContributionQueryString(contributionTableName)
	dbContribution := postgres.NewContribution(contribution)
	_, err := p.db.NamedExec(queryString, dbContribution)
	if err != nil {
		return perrors.Wrap(err, "error saving contribution to table")
	}
	return nil
}

// UpdateContribution updates fields on an existing contribution
func (p *PostgresPersister) UpdateContribution(contribution *model.Contribution,
	updatedFields []string) error {
	queryString, err := p.updateContributionQueryString(contributionTableName, updatedFields)
	if err != nil {
		return err
	}
	dbContribution := postgres.NewContribution(contribution)
	_, err = p.db.NamedExec(queryString, dbContribution)
	if err != nil {
		return perrors.Wrap(err, "error updating contribution in table")
	}
	return nil
}

// ReviewByID retrieves a review by id
func (p *PostgresPersister) ReviewByID(reviewID string) (*model.Review, error) {
	dbReview := postgres.Review{}
	queryString := p.reviewByIDQuery(reviewTableName)
	err := p.db.Get(&dbReview, queryString, reviewID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersisterNoResults
		}
		return nil, perrors.Wrap(err, "wasn't able to get review from postgres table")
	}
	return dbReview.DbToReviewData()
}

// ReviewByContributionAndReviewer retrieves the single review a reviewer
// has made on a contribution
func (p *PostgresPersister) ReviewByContributionAndReviewer(contributionID string,
	reviewerID string) (*model.Review, error) {
	dbReview := postgres.Review{}
	queryString := p.reviewByContributionAndReviewerQuery(reviewTableName)
	err := p.db.Get(&dbReview, queryString, contributionID, reviewerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersisterNoResults
		}
		return nil, perrors.Wrap(err, "wasn't able to get review from postgres table")
	}
	return dbReview.DbToReviewData()
}

// ReviewsByContributionID retrieves the reviews on a contribution,
// newest-first
func (p *PostgresPersister) ReviewsByContributionID(contributionID string) ([]*model.Review, error) {
	queryString := p.reviewsByContributionIDQuery(reviewTableName)
	dbReviews := []postgres.Review{}
	err := p.db.Select(&dbReviews, queryString, contributionID)
	if err != nil {
		return nil, perrors.Wrap(err, "wasn't able to get reviews from postgres table")
	}
	reviews := make([]*model.Review, len(dbReviews))
	for index, dbReview := range dbReviews {
		review, err := dbReview.DbToReviewData()
		if err != nil {
			return nil, err
		}
		reviews[index] = review
	}
	return reviews, nil
}

// CreateReview creates a new review
func (p *PostgresPersister) CreateReview(review *model.Review) error {
	queryString := p.createReviewQueryString(reviewTableName)
	dbReview := postgres.NewReview(review)
	_, err := p.db.NamedExec(queryString, dbReview)
	if err != nil {
		return perrors.Wrap(err, "error saving review to table")
	}
	return nil
}

// UpdateReview updates fields on an existing review
func (p *PostgresPersister) UpdateReview(review *model.Review, updatedFields []string) error {
	queryString, err := p.updateReviewQueryString(reviewTableName, updatedFields)
	if err != nil {
		return err
	}
	dbReview := postgres.NewReview(review)
	_, err = p.db.NamedExec(queryString, dbReview)
	if err != nil {
		return perrors.Wrap(err, "error updating review in table")
	}
	return nil
}

// ReputationByIdentity retrieves the reputation record for an identity
func (p *PostgresPersister) ReputationByIdentity(identityID string) (*model.ReputationRecord, error) {
	dbReputation := postgres.Reputation{}
	queryString := p.reputationByIdentityQuery(reputationTableName)
	err := p.db.Get(&dbReputation, queryString, identityID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersisterNoResults
		}
		return nil, perrors.Wrap(err, "wasn't able to get reputation from postgres table")
	}
	return dbReputation.DbToReputationData()
}

// CreateReputation creates a new reputation record
func (p *PostgresPersister) CreateReputation(record *model.ReputationRecord) error {
	queryString := p.createReputationQueryString(reputationTableName)
	dbReputation := postgres.NewReputation(record)
	_, err := p.db.NamedExec(queryString, dbReputation)
	if err != nil {
		return perrors.Wrap(err, "error saving reputation to table")
	}
	return nil
}

// UpdateReputation updates fields on an existing reputation record
func (p *PostgresPersister) UpdateReputation(record *model.ReputationRecord,
	updatedFields []string) error {
	queryString, err := p.updateReputationQueryString(reputationTableName, updatedFields)
	if err != nil {
		return err
	}
	dbReputation := postgres.NewReputation(record)
	_, err = p.db.NamedExec(queryString, dbReputation)
	if err != nil {
		return perrors.Wrap(err, "error updating reputation in table")
	}
	return nil
}

// TokenTransactionByEventHash retrieves the transaction recorded for a
// logical credit event, if any
func (p *PostgresPersister) TokenTransactionByEventHash(eventHash string) (*model.TokenTransaction, error) {
	dbTransaction := postgres.TokenTransaction{}
	queryString := p.tokenTransactionByEventHashQuery(tokenTransactionTableName)
	err := p.db.Get(&dbTransaction, queryString, eventHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersisterNoResults
		}
		return nil, perrors.Wrap(err, "wasn't able to get token transaction from postgres table")
	}
	return dbTransaction.DbToTokenTransactionData()
}

// TokenTransactionsByIdentity retrieves all transactions where the identity
// is sender or recipient, newest-first
func (p *PostgresPersister) TokenTransactionsByIdentity(identityID string) ([]*model.TokenTransaction, error) {
	queryString := p.tokenTransactionsByIdentityQuery(tokenTransactionTableName)
	return p.selectTokenTransactions(queryString, identityID)
}

// TokenTransactions retrieves every transaction in the ledger, newest-first
func (p *PostgresPersister) TokenTransactions() ([]*model.TokenTransaction, error) {
	queryString := p.tokenTransactionsQuery(tokenTransactionTableName)
	return p.selectTokenTransactions(queryString)
}

// CreateTokenTransaction appends a new transaction to the ledger
func (p *PostgresPersister) CreateTokenTransaction(transaction *model.TokenTransaction) error {
	queryString := p.createTokenTransactionQueryString(tokenTransactionTableName)
	dbTransaction := postgres.NewTokenTransaction(transaction)
	_, err := p.db.NamedExec(queryString, dbTransaction)
	if err != nil {
		return perrors.Wrap(err, "error saving token transaction to table")
	}
	return nil
}

// TimestampOfLastEventForCron returns the timestamp of the last
// reconciliation run
func (p *PostgresPersister) TimestampOfLastEventForCron() (int64, error) {
	queryString := fmt.Sprintf("SELECT timestamp FROM %s;", cronTableName) // nolint: gosec
	var timestamp int64
	err := p.db.Get(&timestamp, queryString)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, perrors.Wrap(err, "wasn't able to get cron timestamp from postgres table")
	}
	return timestamp, nil
}

// UpdateTimestampForCron saves the timestamp of the latest run
func (p *PostgresPersister) UpdateTimestampForCron(timestamp int64) error {
	queryString := fmt.Sprintf( // nolint: gosec
		`INSERT INTO %s (timestamp) VALUES (:timestamp)
		ON CONFLICT ((timestamp IS NOT NULL)) DO UPDATE SET timestamp = :timestamp;`,
		cronTableName)
	_, err := p.db.NamedExec(queryString, postgres.NewCron(timestamp))
	if err != nil {
		return perrors.Wrap(err, "error updating cron timestamp in table")
	}
	return nil
}

func (p *PostgresPersister) selectTokenTransactions(queryString string,
	args ...interface{}) ([]*model.TokenTransaction, error) {
	dbTransactions := []postgres.TokenTransaction{}
	err := p.db.Select(&dbTransactions, queryString, args...)
	if err != nil {
		return nil, perrors.Wrap(err, "wasn't able to get token transactions from postgres table")
	}
	transactions := make([]*model.TokenTransaction, len(dbTransactions))
	for index, dbTransaction := range dbTransactions {
		transaction, err := dbTransaction.DbToTokenTransactionData()
		if err != nil {
			return nil, err
		}
		transactions[index] = transaction
	}
	return transactions, nil
}

func (p *PostgresPersister) contributionByIDQuery(tableName string) string {
	fields, _ := postgres.GetAllStructFieldsForQuery(postgres.Contribution{}, false)
	return fmt.Sprintf("SELECT %s FROM %s WHERE contribution_id=$1;", fields, tableName) // nolint: gosec
}

func (p *PostgresPersister) contributionsByCriteriaQuery(tableName string,
	criteria *model.ContributionCriteria) (string, []interface{}) {
	fields, _ := postgres.GetAllStructFieldsForQuery(postgres.Contribution{}, false)
	queryBuf := strings.Builder{}
	queryBuf.WriteString(fmt.Sprintf("SELECT %s FROM %s", fields, tableName)) // nolint: gosec
	conditions := []string{}
	args := []interface{}{}
	if criteria != nil {
		if criteria.AuthorID != "" {
			args = append(args, criteria.AuthorID)
			conditions = append(conditions, fmt.Sprintf("author_id=$%d", len(args)))
		}
		if criteria.Status != nil {
			args = append(args, int(*criteria.Status))
			conditions = append(conditions, fmt.Sprintf("status=$%d", len(args)))
		}
		for _, tag := range criteria.Tags {
			// Tags are stored as a comma delimited string
			args = append(args, "%"+tag+"%")
			conditions = append(conditions, fmt.Sprintf("tags LIKE $%d", len(args)))
		}
	}
	if len(conditions) > 0 {
		queryBuf.WriteString(" WHERE ")
		queryBuf.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuf.WriteString(" ORDER BY creation_timestamp DESC;")
	return queryBuf.String(), args
}

func (p *PostgresPersister) createContributionQueryString(tableName string) string {
	fields, colonFields := postgres.GetAllStructFieldsForQuery(postgres.Contribution{}, true)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", tableName, fields, colonFields) // nolint: gosec
}

func (p *PostgresPersister) updateContributionQueryString(tableName string,
	updatedFields []string) (string, error) {
	assignments, err := postgres.UpdateAssignmentsForFields(postgres.Contribution{}, updatedFields)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE contribution_id=:contribution_id;", // nolint: gosec
		tableName, strings.Join(assignments, ", ")), nil
}

func (p *PostgresPersister) reviewByIDQuery(tableName string) string {
	fields, _ := postgres.GetAllStructFieldsForQuery(postgres.Review{}, false)
	return fmt.Sprintf("SELECT %s FROM %s WHERE review_id=$1;", fields, tableName) // nolint: gosec
}

func (p *PostgresPersister) reviewByContributionAndReviewerQuery(tableName string) string {
	fields, _ := postgres.GetAllStructFieldsForQuery(postgres.Review{}, false)
	return fmt.Sprintf("SELECT %s FROM %s WHERE contribution_id=$1 AND reviewer_id=$2;", // nolint: gosec
		fields, tableName)
}

func (p *PostgresPersister) reviewsByContributionIDQuery(tableName string) string {
	fields, _ := postgres.GetAllStructFieldsForQuery(postgres.Review{}, false)
	return fmt.Sprintf("SELECT %s FROM %s WHERE contribution_id=$1 ORDER BY creation_timestamp DESC;", // nolint: gosec
		fields, tableName)
}

func (p *PostgresPersister) createReviewQueryString(tableName string) string {
	fields, colonFields := postgres.GetAllStructFieldsForQuery(postgres.Review{}, true)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", tableName, fields, colonFields) // nolint: gosec
}

func (p *PostgresPersister) updateReviewQueryString(tableName string,
	updatedFields []string) (string, error) {
	assignments, err := postgres.UpdateAssignmentsForFields(postgres.Review{}, updatedFields)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE review_id=:review_id;", // nolint: gosec
		tableName, strings.Join(assignments, ", ")), nil
}

func (p *PostgresPersister) reputationByIdentityQuery(tableName string) string {
	fields, _ := postgres.GetAllStructFieldsForQuery(postgres.Reputation{}, false)
	return fmt.Sprintf("SELECT %s FROM %s WHERE identity_id=$1;", fields, tableName) // nolint: gosec
}

func (p *PostgresPersister) createReputationQueryString(tableName string) string {
	fields, colonFields := postgres.GetAllStructFieldsForQuery(postgres.Reputation{}, true)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", tableName, fields, colonFields) // nolint: gosec
}

func (p *PostgresPersister) updateReputationQueryString(tableName string,
	updatedFields []string) (string, error) {
	assignments, err := postgres.UpdateAssignmentsForFields(postgres.Reputation{}, updatedFields)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE identity_id=:identity_id;", // nolint: gosec
		tableName, strings.Join(assignments, ", ")), nil
}

func (p *PostgresPersister) tokenTransactionByEventHashQuery(tableName string) string {
	fields, _ := postgres.GetAllStructFieldsForQuery(postgres.TokenTransaction{}, false)
	return fmt.Sprintf("SELECT %s FROM %s WHERE event_hash=$1;", fields, tableName) // nolint: gosec
}

func (p *PostgresPersister) tokenTransactionsByIdentityQuery(tableName string) string {
	fields, _ := postgres.GetAllStructFieldsForQuery(postgres.TokenTransaction{}, false)
	return fmt.Sprintf("SELECT %s FROM %s WHERE to_id=$1 OR from_id=$1 ORDER BY transfer_timestamp DESC;", // nolint: gosec
		fields, tableName)
}

func (p *PostgresPersister) tokenTransactionsQuery(tableName string) string {
	fields, _ := postgres.GetAllStructFieldsForQuery(postgres.TokenTransaction{}, false)
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY transfer_timestamp DESC;", fields, tableName) // nolint: gosec
}

func (p *PostgresPersister) createTokenTransactionQueryString(tableName string) string {
	fields, colonFields := postgres.GetAllStructFieldsForQuery(postgres.TokenTransaction{}, true)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", tableName, fields, colonFields) // nolint: gosec
}
