package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/talkincode/inventory/internal/app"
	"github.com/talkincode/inventory/internal/webserver"
)

// Init registers every admin API route on the server.
func Init(srv *webserver.AdminServer, appCtx app.AppContext) {
	registerHealthRoutes(srv, appCtx)
	registerProductRoutes(srv, appCtx.Store())
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, msg string) error {
	if status >= http.StatusInternalServerError {
		zap.L().Error("admin api failure",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.String("error", msg))
	}
	return c.JSON(status, webserver.ErrorResponse{Error: msg})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func handleValidationError(c echo.Context, err error) error {
	return fail(c, http.StatusBadRequest, webserver.ValidationMessage(err))
}
