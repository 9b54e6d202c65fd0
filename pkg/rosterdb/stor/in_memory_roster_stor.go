package stor

import (
	"sync"

	"github.com/mergington/activities/pkg/rosterdb/model"
	"github.com/pkg/errors"
)

type InMemoryRosterStor struct {
	mu         sync.RWMutex
	seed       []*model.Activity
	activities map[string]*model.Activity
}

// NewInMemoryRosterStor creates a roster holding copies of seed. Reset
// restores those copies.
func NewInMemoryRosterStor(seed []*model.Activity) *InMemoryRosterStor {
	s := &InMemoryRosterStor{}
	for _, a := range seed {
		s.seed = append(s.seed, a.Clone())
	}

	s.load()
	return s
}

func (s *InMemoryRosterStor) load() {
	s.activities = make(map[string]*model.Activity, len(s.seed))
	for _, a := range s.seed {
		s.activities[a.Name] = a.Clone()
	}
}

func (s *InMemoryRosterStor) ListActivities() (map[string]*model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activities := make(map[string]*model.Activity, len(s.activities))
	for name, a := range s.activities {
		activities[name] = a.Clone()
	}

	return activities, nil
}

func (s *InMemoryRosterStor) GetActivity(activityName string) (*model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[activityName]
	if !ok {
		return nil, errors.Wrapf(ErrActivityNotFound, "'%s'", activityName)
	}

	return a.Clone(), nil
}

func (s *InMemoryRosterStor) Enroll(activityName, email string) (*model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activityName]
	switch {
	case !ok:
		return nil, errors.Wrapf(ErrActivityNotFound, "'%s'", activityName)
	case a.HasParticipant(email):
		return nil, errors.Wrapf(ErrAlreadySignedUp, "%s in '%s'", email, activityName)
	}

	a.Participants = append(a.Participants, email)

	return a.Clone(), nil
}

func (s *InMemoryRosterStor) Withdraw(activityName, email string) (*model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activityName]
	if !ok {
		return nil, errors.Wrapf(ErrActivityNotFound, "'%s'", activityName)
	}

	if !a.RemoveParticipant(email) {
		return nil, errors.Wrapf(ErrNotSignedUp, "%s in '%s'", email, activityName)
	}

	return a.Clone(), nil
}

func (s *InMemoryRosterStor) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load()
	return nil
}
