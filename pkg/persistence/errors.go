// Package persistence contains components to interact with the DB
package persistence // import "github.com/openscholar/contribution-processor/pkg/persistence"

import (
	"errors"
)

// ErrPersisterNoResults is the error returned when a persister query finds
// no matching records
var ErrPersisterNoResults = errors.New("No results from persister")
