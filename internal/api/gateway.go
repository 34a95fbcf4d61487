// Package api is the optional REST gateway. It mirrors the MCP tool
// surface over plain HTTP so non-MCP callers can drive the same
// operations.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mifos-community/mifosx-mcp/internal/codes"
	"github.com/mifos-community/mifosx-mcp/internal/dates"
	"github.com/mifos-community/mifosx-mcp/internal/engine"
	"github.com/mifos-community/mifosx-mcp/internal/fineract"
	"github.com/mifos-community/mifosx-mcp/internal/template"
	"github.com/mifos-community/mifosx-mcp/internal/tools"
)

// Gateway serves the tool registry over HTTP.
type Gateway struct {
	registry *tools.Registry
	logger   *logrus.Logger
	engine   *gin.Engine
}

// NewGateway builds the HTTP surface: a health probe, the tool listing,
// and a generic tool invocation endpoint.
func NewGateway(registry *tools.Registry, logger *logrus.Logger) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	g := &Gateway{registry: registry, logger: logger, engine: r}

	r.GET("/health", g.health)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/tools", g.listTools)
		v1.POST("/tools/:name", g.invokeTool)
	}

	return g
}

// Run blocks serving HTTP on the given port.
func (g *Gateway) Run(port int) error {
	addr := fmt.Sprintf(":%d", port)
	g.logger.Infof("REST gateway listening on %s", addr)
	return g.engine.Run(addr)
}

// Handler exposes the router for tests.
func (g *Gateway) Handler() http.Handler {
	return g.engine
}

func (g *Gateway) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (g *Gateway) listTools(c *gin.Context) {
	specs := g.registry.Specs()
	list := make([]gin.H, 0, len(specs))
	for _, spec := range specs {
		list = append(list, gin.H{
			"name":        spec.Name,
			"description": spec.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"tools": list})
}

func (g *Gateway) invokeTool(c *gin.Context) {
	name := c.Param("name")

	args := map[string]interface{}{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&args); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
			return
		}
	}

	raw, err := g.registry.Invoke(c.Request.Context(), name, args)
	if err != nil {
		status, kind := classify(err)
		g.logger.WithError(err).WithField("tool", name).Warn("Tool invocation failed")
		c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}

// classify maps the engine's error taxonomy onto HTTP statuses: caller
// mistakes are 422, backend trouble is 502, unknown tools are 404.
func classify(err error) (int, string) {
	var (
		unknown     *tools.UnknownToolError
		validation  *engine.ValidationError
		unresolved  *engine.UnresolvedCodeError
		notFound    *codes.NotFoundError
		invalid     *dates.InvalidDateError
		mismatch    *dates.FormatMismatchError
		unavailable *template.UnavailableError
		transport   *fineract.TransportError
	)

	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound, "unknown_tool"
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, "validation_failed"
	case errors.As(err, &unresolved):
		return http.StatusUnprocessableEntity, "unresolved_code"
	case errors.As(err, &notFound):
		return http.StatusUnprocessableEntity, "unresolved_code"
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity, "invalid_date"
	case errors.As(err, &mismatch):
		return http.StatusUnprocessableEntity, "date_format_mismatch"
	case errors.As(err, &unavailable):
		return http.StatusBadGateway, "template_unavailable"
	case errors.As(err, &transport):
		return http.StatusBadGateway, "transport_error"
	}
	return http.StatusInternalServerError, "internal"
}
