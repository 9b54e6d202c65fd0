package model

import (
	"time"
)

// Activity is the API view of an activity. Name is the registry key and is
// not part of the JSON body.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func (a *Activity) HasParticipant(email string) bool {
	return a.participantIndex(email) != -1
}

func (a *Activity) participantIndex(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}

	return -1
}

// RemoveParticipant removes the first occurrence of email. It returns false
// if email wasn't a participant.
func (a *Activity) RemoveParticipant(email string) bool {
	i := a.participantIndex(email)
	if i == -1 {
		return false
	}

	a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
	return true
}

// Clone returns a deep copy. Participants is never nil in the copy so it
// always encodes as a JSON array.
func (a *Activity) Clone() *Activity {
	c := *a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return &c
}

// ActivityRecord is the gorm row for an activity.
type ActivityRecord struct {
	ID              int                 `json:"id"`
	UUID            string              `json:"uuid"`
	Name            string              `json:"name" gorm:"uniqueIndex"`
	Slug            string              `json:"slug"`
	Description     string              `json:"description"`
	Schedule        string              `json:"schedule"`
	MaxParticipants int                 `json:"max_participants"`
	Participants    []ParticipantRecord `json:"participants" gorm:"foreignKey:ActivityID;references:ID"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func (ActivityRecord) TableName() string {
	return "activities"
}

// ToActivity converts the row (with Participants preloaded in insertion
// order) into the API view.
func (r *ActivityRecord) ToActivity() *Activity {
	a := &Activity{
		Name:            r.Name,
		Description:     r.Description,
		Schedule:        r.Schedule,
		MaxParticipants: r.MaxParticipants,
		Participants:    make([]string, 0, len(r.Participants)),
	}

	for _, p := range r.Participants {
		a.Participants = append(a.Participants, p.Email)
	}

	return a
}

type ParticipantRecord struct {
	ID         int       `json:"id"`
	ActivityID int       `json:"activity_id" gorm:"uniqueIndex:idx_activity_participant"`
	Email      string    `json:"email" gorm:"uniqueIndex:idx_activity_participant"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ParticipantRecord) TableName() string {
	return "activity_participants"
}
