package rosterclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mergington/activities/pkg/rosterdb/model"
	"github.com/pkg/errors"
)

// APIError is returned for any non-2xx reply from the server.
type APIError struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("(HTTP Status: %d) %s", e.StatusCode, e.Detail)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Client talks to the activities API.
type Client struct {
	rc *resty.Client
}

func NewClient(baseURL string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{rc: rc}
}

type messageResponse struct {
	Message string `json:"message"`
}

// ListActivities returns every activity keyed by name, with Name filled in.
func (c *Client) ListActivities() (map[string]*model.Activity, error) {
	var activities map[string]*model.Activity

	resp, err := c.rc.R().SetResult(&activities).Get("/activities")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	for name, a := range activities {
		a.Name = name
	}

	return activities, nil
}

// Signup signs email up for activityName and returns the server's message.
func (c *Client) Signup(activityName, email string) (string, error) {
	return c.signupRequest(http.MethodPost, activityName, email)
}

// CancelSignup removes email from activityName and returns the server's
// message.
func (c *Client) CancelSignup(activityName, email string) (string, error) {
	return c.signupRequest(http.MethodDelete, activityName, email)
}

func (c *Client) signupRequest(method, activityName, email string) (string, error) {
	var result messageResponse

	resp, err := c.rc.R().
		SetPathParam("activity_name", activityName).
		SetQueryParam("email", email).
		SetResult(&result).
		Execute(method, "/activities/{activity_name}/signup")

	if err := checkResponse(resp, err); err != nil {
		return "", err
	}

	return result.Message, nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return errors.Wrap(err, "request failed")
	}

	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if jsonErr := json.Unmarshal(resp.Body(), apiErr); jsonErr != nil || apiErr.Detail == "" {
		apiErr.Detail = resp.Status()
	}

	return apiErr
}
