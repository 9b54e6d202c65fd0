package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRemoveParticipant(t *testing.T) {
	tests := []struct {
		name         string
		participants []string
		email        string
		removed      bool
		want         []string
	}{
		{name: "Removes first", participants: []string{"a", "b"}, email: "a", removed: true, want: []string{"b"}},
		{name: "Removes last", participants: []string{"a", "b"}, email: "b", removed: true, want: []string{"a"}},
		{name: "Missing email", participants: []string{"a"}, email: "c", removed: false, want: []string{"a"}},
		{name: "Empty list", participants: []string{}, email: "a", removed: false, want: []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := &Activity{Participants: test.participants}
			assert.Equal(t, test.removed, a.RemoveParticipant(test.email))
			assert.Equal(t, test.want, a.Participants)
		})
	}
}

func TestActivityCloneIsIndependent(t *testing.T) {
	a := &Activity{Name: "Chess Club", Participants: []string{"michael@mergington.edu"}}
	c := a.Clone()
	c.Participants = append(c.Participants, "new@mergington.edu")
	c.Participants[0] = "changed@mergington.edu"

	assert.Equal(t, []string{"michael@mergington.edu"}, a.Participants)
	assert.Equal(t, "Chess Club", c.Name)
}

func TestActivityJSONShape(t *testing.T) {
	a := (&Activity{Name: "Art Studio", Description: "d", Schedule: "s", MaxParticipants: 15}).Clone()

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"d","schedule":"s","max_participants":15,"participants":[]}`, string(b))
}

func TestActivityRecordToActivity(t *testing.T) {
	r := &ActivityRecord{
		Name:            "Drama Club",
		MaxParticipants: 25,
		Participants: []ParticipantRecord{
			{Email: "mia@mergington.edu"},
			{Email: "noah@mergington.edu"},
		},
	}

	a := r.ToActivity()
	assert.Equal(t, "Drama Club", a.Name)
	assert.Equal(t, 25, a.MaxParticipants)
	assert.Equal(t, []string{"mia@mergington.edu", "noah@mergington.edu"}, a.Participants)
}
