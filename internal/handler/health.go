package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health reports liveness for load balancers and monitoring.  It
// deliberately touches neither MySQL nor Redis so a degraded
// dependency never flaps the instance out of rotation.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
