package stor

import (
	"github.com/mergington/activities/pkg/rosterdb/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RosterStor is the activity roster. Activities are keyed by exact name.
// Returned activities are copies owned by the caller.
type RosterStor interface {
	ListActivities() (map[string]*model.Activity, error)
	GetActivity(activityName string) (*model.Activity, error)
	Enroll(activityName, email string) (*model.Activity, error)
	Withdraw(activityName, email string) (*model.Activity, error)
	Reset() error
}

const (
	RosterStorMemory = "memory"
	RosterStorSqlite = "sqlite"
)

// NewRosterStor creates the roster named by kind. db is only used (and
// required) for RosterStorSqlite.
func NewRosterStor(kind string, db *gorm.DB) (RosterStor, error) {
	switch kind {
	case "", RosterStorMemory:
		return NewInMemoryRosterStor(SeedActivities()), nil
	case RosterStorSqlite:
		if db == nil {
			return nil, errors.New("sqlite roster requires a db")
		}
		return NewGormRosterStor(db)
	default:
		return nil, errors.Errorf("unknown roster store '%s'", kind)
	}
}
