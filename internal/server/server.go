// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server exposes the project store over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/shayne/matrix/internal/config"
	"github.com/shayne/matrix/internal/noise"
	"github.com/shayne/matrix/internal/store"
)

type Config struct {
	Listen string
	// Burst controls the noise printed when the hack endpoint is hit.
	Burst noise.BurstOptions
	// BurstOutput defaults to stdout.
	BurstOutput io.Writer
}

type Server struct {
	echo   *echo.Echo
	store  *store.Store
	log    zerolog.Logger
	cfg    Config
	bursts sync.WaitGroup
}

func New(st *store.Store, log zerolog.Logger, cfg Config) (*Server, error) {
	if st == nil {
		return nil, errors.New("store cannot be nil")
	}
	if cfg.Listen == "" {
		cfg.Listen = config.DefaultListen
	}
	if cfg.Burst == (noise.BurstOptions{}) {
		cfg.Burst = noise.DefaultBurst()
	}
	if cfg.BurstOutput == nil {
		cfg.BurstOutput = os.Stdout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.Info().
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("http request")
			return nil
		}
	})

	s := &Server{
		echo:  e,
		store: st,
		log:   log,
		cfg:   cfg,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealth)

	s.echo.GET("/projects", s.handleListProjects)
	s.echo.POST("/projects/new/:name", s.handleCreateProject)
	s.echo.DELETE("/projects/delete/:name", s.handleDeleteProject)
	s.echo.GET("/hack-trigger", s.handleHackTrigger)

	s.echo.GET("/web", s.handleWebRoot)
	s.echo.GET("/web/", s.handleWebRoot)
	s.echo.GET("/web/:project", s.handleWebIndex)
	s.echo.GET("/web/:project/*", s.handleWebAsset)

	edit := s.echo.Group("/edit")
	edit.GET("/list", s.handleEditList)
	edit.GET("/file", s.handleEditRead)
	edit.POST("/file", s.handleEditWrite)

	s.echo.POST("/upload/project", s.handleUpload)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.cfg.Listen).Str("web_dir", s.store.Root()).Msg("starting http server")
	return s.echo.Start(s.cfg.Listen)
}

// Shutdown stops accepting requests and waits for running bursts.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down http server")
	err := s.echo.Shutdown(ctx)
	done := make(chan struct{})
	go func() {
		s.bursts.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	return err
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
