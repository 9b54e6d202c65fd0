package rosterclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/rosterapi/webapi"
	"github.com/mergington/activities/pkg/rosterdb/stor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Client {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = webapi.HTTPErrorHandler
	controller := webapi.NewActivitiesController(stor.NewInMemoryRosterStor(stor.SeedActivities()), nil)
	e.GET("/activities", controller.ListActivities)
	e.POST("/activities/:activity_name/signup", controller.SignupForActivity)
	e.DELETE("/activities/:activity_name/signup", controller.CancelSignup)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return NewClient(server.URL)
}

func TestClientListActivities(t *testing.T) {
	c := newTestServer(t)

	activities, err := c.ListActivities()
	require.NoError(t, err)
	require.Len(t, activities, 9)
	assert.Equal(t, "Chess Club", activities["Chess Club"].Name)
	assert.Equal(t, 12, activities["Chess Club"].MaxParticipants)
}

func TestClientSignupAndCancel(t *testing.T) {
	c := newTestServer(t)

	msg, err := c.Signup("Programming Class", "newcoder@mergington.edu")
	require.NoError(t, err)
	assert.Contains(t, msg, "newcoder@mergington.edu")
	assert.Contains(t, msg, "Programming Class")

	activities, err := c.ListActivities()
	require.NoError(t, err)
	assert.Contains(t, activities["Programming Class"].Participants, "newcoder@mergington.edu")

	msg, err = c.CancelSignup("Programming Class", "newcoder@mergington.edu")
	require.NoError(t, err)
	assert.Contains(t, msg, "newcoder@mergington.edu")

	activities, err = c.ListActivities()
	require.NoError(t, err)
	assert.NotContains(t, activities["Programming Class"].Participants, "newcoder@mergington.edu")
}

func TestClientErrors(t *testing.T) {
	c := newTestServer(t)

	tests := []struct {
		name       string
		call       func() (string, error)
		wantStatus int
		wantDetail string
	}{
		{
			name:       "Unknown activity",
			call:       func() (string, error) { return c.Signup("Nonexistent Club", "test@mergington.edu") },
			wantStatus: http.StatusNotFound,
			wantDetail: "Activity not found",
		},
		{
			name:       "Already signed up",
			call:       func() (string, error) { return c.Signup("Chess Club", "michael@mergington.edu") },
			wantStatus: http.StatusBadRequest,
			wantDetail: "already signed up",
		},
		{
			name:       "Not signed up",
			call:       func() (string, error) { return c.CancelSignup("Chess Club", "nobody@mergington.edu") },
			wantStatus: http.StatusBadRequest,
			wantDetail: "not signed up",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.call()
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, test.wantStatus, apiErr.StatusCode)
			assert.Contains(t, apiErr.Detail, test.wantDetail)
			assert.Equal(t, test.wantStatus == http.StatusNotFound, apiErr.IsNotFound())
		})
	}
}

func TestClientUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url).ListActivities()
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
