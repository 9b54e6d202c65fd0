package webapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/rosterdb/model"
	"github.com/mergington/activities/pkg/rosterdb/stor"
)

// RosterEventPublisher is told about every successful roster change.
type RosterEventPublisher interface {
	PublishSignup(activity *model.Activity, email string)
	PublishCancel(activity *model.Activity, email string)
}

type ActivitiesController struct {
	rosterStor stor.RosterStor
	publisher  RosterEventPublisher
}

// NewActivitiesController creates the controller. publisher may be nil.
func NewActivitiesController(rosterStor stor.RosterStor, publisher RosterEventPublisher) *ActivitiesController {
	return &ActivitiesController{rosterStor: rosterStor, publisher: publisher}
}

// MessageResponse is the body of a successful signup or cancel.
type MessageResponse struct {
	Message string `json:"message"`
}

func (c *ActivitiesController) ListActivities(ctx echo.Context) error {
	activities, err := c.rosterStor.ListActivities()
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, activities)
}

func (c *ActivitiesController) SignupForActivity(ctx echo.Context) error {
	activityName := activityNameParam(ctx)
	email, err := emailParam(ctx)
	if err != nil {
		return err
	}

	activity, err := c.rosterStor.Enroll(activityName, email)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"activity": activityName, "email": email}).Info("signed up")

	if c.publisher != nil {
		c.publisher.PublishSignup(activity, email)
	}

	return ctx.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("Signed up %s for %s", email, activityName)})
}

func (c *ActivitiesController) CancelSignup(ctx echo.Context) error {
	activityName := activityNameParam(ctx)
	email, err := emailParam(ctx)
	if err != nil {
		return err
	}

	activity, err := c.rosterStor.Withdraw(activityName, email)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"activity": activityName, "email": email}).Info("unregistered")

	if c.publisher != nil {
		c.publisher.PublishCancel(activity, email)
	}

	return ctx.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("Unregistered %s from %s", email, activityName)})
}

// activityNameParam returns the decoded activity_name path segment. echo
// routes on the raw path when the request path has escapes that don't
// round trip, in which case the parameter is still escaped.
func activityNameParam(ctx echo.Context) string {
	name := ctx.Param("activity_name")
	if ctx.Request().URL.RawPath == "" {
		return name
	}

	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}

	return name
}

func emailParam(ctx echo.Context) (string, error) {
	email := ctx.QueryParam("email")
	if strings.TrimSpace(email) == "" {
		return "", echo.NewHTTPError(http.StatusUnprocessableEntity, DetailEmailRequired)
	}

	return email, nil
}
