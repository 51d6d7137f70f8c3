// Package ops exposes the liveness and metrics endpoints on a side HTTP
// listener. The directory itself is reachable only through message
// patterns; nothing here is part of that contract.
package ops

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	RouteApiV1 = "/api/v1"

	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)

func Register(r *gin.Engine) {
	r.GET(RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET(RouteMetrics, gin.WrapH(promhttp.Handler()))
}
