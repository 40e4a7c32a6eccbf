// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/shayne/matrix/internal/noise"
	"github.com/shayne/matrix/internal/store"
)

type ProjectsResponse struct {
	Projects []string `json:"projects"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// projectError writes store failures in the {"error": ...} shape the
// console client understands.
func (s *Server) projectError(c echo.Context, err error) error {
	status, msg := classify(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("project operation failed")
	}
	return c.JSON(status, ErrorResponse{Error: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrInvalidName):
		return http.StatusBadRequest, "Invalid project name"
	case errors.Is(err, store.ErrInvalidPath):
		return http.StatusBadRequest, "Invalid file path"
	case errors.Is(err, store.ErrExists):
		return http.StatusConflict, "Project already exists"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "Project not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := s.store.List()
	if err != nil {
		return s.projectError(c, err)
	}
	return c.JSON(http.StatusOK, ProjectsResponse{Projects: projects})
}

func (s *Server) handleCreateProject(c echo.Context) error {
	name := param(c, "name")
	if err := s.store.Create(name); err != nil {
		return s.projectError(c, err)
	}
	s.log.Info().Str("project", name).Msg("project created")
	return c.JSON(http.StatusOK, struct{}{})
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	name := param(c, "name")
	if err := s.store.Delete(name); err != nil {
		return s.projectError(c, err)
	}
	s.log.Info().Str("project", name).Msg("project deleted")
	return c.JSON(http.StatusOK, struct{}{})
}

func (s *Server) handleHackTrigger(c echo.Context) error {
	s.bursts.Add(1)
	go func() {
		defer s.bursts.Done()
		if err := noise.Burst(s.cfg.BurstOutput, noise.NewSource(), s.cfg.Burst); err != nil {
			s.log.Warn().Err(err).Msg("noise burst failed")
		}
	}()
	return c.JSON(http.StatusOK, StatusResponse{Status: "ACCESS GRANTED"})
}

// handleWebRoot serves the workspace landing page.
func (s *Server) handleWebRoot(c echo.Context) error {
	index := filepath.Join(s.store.Root(), store.IndexFile)
	if info, err := os.Stat(index); err != nil || info.IsDir() {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	}
	return c.File(index)
}

func (s *Server) handleWebIndex(c echo.Context) error {
	index, err := s.store.IndexPath(param(c, "project"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Project not found"})
	}
	return c.File(index)
}

func (s *Server) handleWebAsset(c echo.Context) error {
	project := param(c, "project")
	rel := param(c, "*")
	if rel == "" {
		return s.handleWebIndex(c)
	}
	p, err := s.store.Resolve(project, rel)
	if err != nil {
		return s.projectError(c, err)
	}
	info, err := os.Stat(p)
	if err == nil && info.IsDir() {
		p = filepath.Join(p, store.IndexFile)
		info, err = os.Stat(p)
	}
	if err != nil || info.IsDir() {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	}
	return c.File(p)
}

// param returns the unescaped path parameter.
func param(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
