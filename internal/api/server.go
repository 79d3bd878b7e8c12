// Package api serves a loaded grid over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/eclgrid/internal/logger"
	"github.com/samcharles93/eclgrid/pkg/egrid"
)

type Server struct {
	grid *egrid.Grid
	log  logger.Logger
}

func NewServer(grid *egrid.Grid, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{grid: grid, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	g := e.Group("/v1/grid", RequestID())
	g.GET("", s.handleGrid)
	g.GET("/limits", s.handleLimits)
	g.GET("/cells/:i/:j/:k", s.handleCell)
	g.GET("/pillars/:c/:r", s.handlePillar)
}

func (s *Server) handleGrid(c *echo.Context) error {
	return c.JSON(http.StatusOK, newGridResponse(s.grid))
}

func (s *Server) handleLimits(c *echo.Context) error {
	return c.JSON(http.StatusOK, newLimitsResponse(s.grid.CalcGridLimits()))
}

func (s *Server) handleCell(c *echo.Context) error {
	idx, err := indexParams(c, "i", "j", "k")
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	cell, err := s.grid.GetCell(idx[0], idx[1], idx[2])
	if err != nil {
		return s.lookupError(c, err, egrid.ErrCellOutOfRange)
	}
	return c.JSON(http.StatusOK, newCellResponse(idx[0], idx[1], idx[2], cell))
}

func (s *Server) handlePillar(c *echo.Context) error {
	idx, err := indexParams(c, "c", "r")
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	top, bottom, err := s.grid.Pillar(idx[0], idx[1])
	if err != nil {
		return s.lookupError(c, err, egrid.ErrPillarOutOfRange)
	}
	return c.JSON(http.StatusOK, PillarResponse{
		Object: "grid.pillar",
		Col:    idx[0],
		Row:    idx[1],
		Top:    pointFrom(top),
		Bottom: pointFrom(bottom),
	})
}

func (s *Server) lookupError(c *echo.Context, err, notFound error) error {
	if errors.Is(err, notFound) {
		return writeNotFound(c, err.Error())
	}
	s.log.Error("grid lookup failed", "path", c.Request().URL.Path, "error", err)
	return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
}
