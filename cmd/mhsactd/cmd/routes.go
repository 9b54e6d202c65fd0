package cmd

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mergington/activities/pkg/clog"
	"github.com/mergington/activities/pkg/rosterapi/webapi"
	"github.com/mergington/activities/pkg/rosterdb/stor"
	"github.com/mergington/activities/pkg/rosterhub"
)

type RouteOpts struct {
	rosterStor stor.RosterStor
	hub        *rosterhub.Hub
	staticDir  string
}

func newEcho(opts RouteOpts) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = webapi.HTTPErrorHandler
	e.Use(clog.RequestLogger())
	e.Use(middleware.Recover())

	setupRoutes(e, opts)

	return e
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	e.GET("/", webapi.RedirectToIndex)
	e.Static("/static", opts.staticDir)

	var publisher webapi.RosterEventPublisher
	if opts.hub != nil {
		publisher = opts.hub
		e.GET("/ws/activities", opts.hub.ServeWS)
	}

	g := e.Group("/activities")

	activitiesController := webapi.NewActivitiesController(opts.rosterStor, publisher)
	g.GET("", activitiesController.ListActivities)
	g.POST("/:activity_name/signup", activitiesController.SignupForActivity)
	g.DELETE("/:activity_name/signup", activitiesController.CancelSignup)
}
