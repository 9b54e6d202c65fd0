package stor

import "github.com/mergington/activities/pkg/rosterdb/model"

// SeedActivities returns a fresh copy of the activities the roster starts
// with.
func SeedActivities() []*model.Activity {
	return []*model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Soccer Team",
			Description:     "Join the school soccer team and compete in local tournaments",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"alex@mergington.edu"},
		},
		{
			Name:            "Basketball Club",
			Description:     "Practice basketball skills and play friendly matches",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"james@mergington.edu", "lucas@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Explore various art mediums including painting, drawing, and sculpture",
			Schedule:        "Mondays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"lily@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Acting, stagecraft, and theatrical productions",
			Schedule:        "Thursdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"mia@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop critical thinking and public speaking through competitive debates",
			Schedule:        "Wednesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"ava@mergington.edu"},
		},
		{
			Name:            "Science Olympiad",
			Description:     "Compete in science and engineering challenges",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"ethan@mergington.edu", "isabella@mergington.edu"},
		},
	}
}
