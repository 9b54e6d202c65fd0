package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const IndexPath = "/static/index.html"

func RedirectToIndex(ctx echo.Context) error {
	return ctx.Redirect(http.StatusTemporaryRedirect, IndexPath)
}
