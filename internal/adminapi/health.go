package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/inventory/internal/app"
	"github.com/talkincode/inventory/internal/webserver"
)

func registerHealthRoutes(srv *webserver.AdminServer, db app.DBProvider) {
	srv.ApiGET("/health", func(c echo.Context) error {
		sqlDB, err := db.DB().DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return fail(c, http.StatusInternalServerError, err.Error())
		}
		return ok(c, map[string]string{"status": "ok"})
	})
}
