package rosterdb

import (
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultSqliteDSN = "file:mhsactivities?mode=memory&cache=shared"

const maxDBRetries = 5

// OpenDB opens a gorm sqlite database. The pool is limited to one
// connection: an in-memory database lives only as long as its connection,
// and sqlite serializes writers anyway.
func OpenDB(dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db (%s)", dsn)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get sql.DB for %s", dsn)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

// MustConnectToDB will attempt to open the database maxDBRetries times. If it isn't successful
// after that number of retries then it will call log.Fatalf(), which will cause the server to exit.
func MustConnectToDB(dsn string) *gorm.DB {
	retryCount := 1
	for {
		db, err := OpenDB(dsn)
		switch {
		case err == nil:
			return db
		case retryCount >= maxDBRetries:
			log.Fatalf("%s", err)
		default:
			retryCount++
			time.Sleep(time.Second)
		}
	}
}
