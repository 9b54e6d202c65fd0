package stor

import (
	"github.com/mergington/activities/pkg/rosterdb/config"
	"gorm.io/gorm"
)

// WithTxRetry runs fn in a transaction, retrying on failure. Roster errors
// (unknown activity, duplicate or missing signup) are returned immediately
// since retrying can't change their outcome.
func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	retryCount := config.GetTxRetry()

	for i := 0; i < retryCount; i++ {
		err = db.Transaction(fn)
		if err == nil || IsRosterError(err) {
			break
		}
	}

	return err
}
