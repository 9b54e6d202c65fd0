package stor

import (
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/mergington/activities/pkg/lock"
	"github.com/mergington/activities/pkg/rosterdb/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormRosterStor keeps the roster in a gorm database. Mutations of one
// activity are serialized through activityLocker, on top of the
// transaction, so the participant uniqueness check and insert can't
// interleave. Locks are keyed by activity ID and only taken once the
// activity is known to exist.
type GormRosterStor struct {
	db             *gorm.DB
	activityLocker *lock.IdLocker
}

// NewGormRosterStor migrates the roster tables and seeds them if they are
// empty.
func NewGormRosterStor(db *gorm.DB) (*GormRosterStor, error) {
	s := &GormRosterStor{db: db, activityLocker: lock.NewIdLocker()}

	if err := db.AutoMigrate(&model.ActivityRecord{}, &model.ParticipantRecord{}); err != nil {
		return nil, errors.Wrap(err, "unable to migrate roster tables")
	}

	var count int64
	if err := db.Model(&model.ActivityRecord{}).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "unable to count activities")
	}

	if count == 0 {
		if err := s.Reset(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *GormRosterStor) ListActivities() (map[string]*model.Activity, error) {
	var records []model.ActivityRecord

	err := s.db.Preload("Participants", func(db *gorm.DB) *gorm.DB {
		return db.Order("activity_participants.id")
	}).Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to list activities")
	}

	activities := make(map[string]*model.Activity, len(records))
	for i := range records {
		activities[records[i].Name] = records[i].ToActivity()
	}

	return activities, nil
}

func (s *GormRosterStor) GetActivity(activityName string) (*model.Activity, error) {
	record, err := findActivityRecord(s.db, activityName)
	if err != nil {
		return nil, err
	}

	return record.ToActivity(), nil
}

func (s *GormRosterStor) Enroll(activityName, email string) (*model.Activity, error) {
	var activity *model.Activity

	found, err := findActivityRecord(s.db, activityName)
	if err != nil {
		return nil, err
	}

	err = s.activityLocker.WithLock(found.ID, func() error {
		return WithTxRetry(s.db, func(tx *gorm.DB) error {
			record, err := findActivityRecord(tx, activityName)
			if err != nil {
				return err
			}

			if record.ToActivity().HasParticipant(email) {
				return errors.Wrapf(ErrAlreadySignedUp, "%s in '%s'", email, activityName)
			}

			participant := model.ParticipantRecord{ActivityID: record.ID, Email: email}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}

			record.Participants = append(record.Participants, participant)
			activity = record.ToActivity()

			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return activity, nil
}

func (s *GormRosterStor) Withdraw(activityName, email string) (*model.Activity, error) {
	var activity *model.Activity

	found, err := findActivityRecord(s.db, activityName)
	if err != nil {
		return nil, err
	}

	err = s.activityLocker.WithLock(found.ID, func() error {
		return WithTxRetry(s.db, func(tx *gorm.DB) error {
			record, err := findActivityRecord(tx, activityName)
			if err != nil {
				return err
			}

			result := tx.Where("activity_id = ? AND email = ?", record.ID, email).Delete(&model.ParticipantRecord{})
			switch {
			case result.Error != nil:
				return result.Error
			case result.RowsAffected == 0:
				return errors.Wrapf(ErrNotSignedUp, "%s in '%s'", email, activityName)
			}

			activity = record.ToActivity()
			activity.RemoveParticipant(email)

			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return activity, nil
}

// Reset replaces every activity and participant with the seed.
func (s *GormRosterStor) Reset() error {
	records, err := seedRecords()
	if err != nil {
		return err
	}

	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.ParticipantRecord{}).Error; err != nil {
			return err
		}

		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.ActivityRecord{}).Error; err != nil {
			return err
		}

		// Fresh copies each attempt, Create fills in IDs.
		for _, r := range records {
			record := r
			record.Participants = append([]model.ParticipantRecord(nil), r.Participants...)
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func findActivityRecord(db *gorm.DB, activityName string) (*model.ActivityRecord, error) {
	var record model.ActivityRecord

	err := db.Preload("Participants", func(db *gorm.DB) *gorm.DB {
		return db.Order("activity_participants.id")
	}).Where("name = ?", activityName).First(&record).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.Wrapf(ErrActivityNotFound, "'%s'", activityName)
	case err != nil:
		return nil, errors.Wrapf(err, "unable to load activity '%s'", activityName)
	}

	return &record, nil
}

func seedRecords() ([]model.ActivityRecord, error) {
	var records []model.ActivityRecord

	for _, a := range SeedActivities() {
		activityUUID, err := uuid.GenerateUUID()
		if err != nil {
			return nil, err
		}

		record := model.ActivityRecord{
			UUID:            activityUUID,
			Name:            a.Name,
			Slug:            slug.Make(a.Name),
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
		}

		for _, email := range a.Participants {
			record.Participants = append(record.Participants, model.ParticipantRecord{Email: email})
		}

		records = append(records, record)
	}

	return records, nil
}
