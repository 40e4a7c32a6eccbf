// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shayne/yargs"

	"github.com/shayne/matrix/internal/config"
	"github.com/shayne/matrix/internal/logging"
	"github.com/shayne/matrix/internal/server"
	"github.com/shayne/matrix/internal/store"
)

const (
	usage           = "Usage: matrix-server [--listen addr] [--web-dir dir] [--log-level level]"
	shutdownTimeout = 10 * time.Second
)

type serverFlags struct {
	Listen   string `flag:"listen" help:"address to listen on"`
	WebDir   string `flag:"web-dir" help:"directory holding project folders"`
	LogLevel string `flag:"log-level" help:"log level (debug, info, warn, error)"`
}

func main() {
	args := os.Args[1:]
	if hasHelpFlag(args) {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	result, err := yargs.ParseFlags[serverFlags](args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if len(result.Args) > 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(result.Flags); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" || arg == "help" {
			return true
		}
	}
	return false
}

func resolveConfig(flags serverFlags) (config.Config, error) {
	cfg, _, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if v := strings.TrimSpace(flags.Listen); v != "" {
		cfg.Server.Listen = v
	}
	if v := strings.TrimSpace(flags.WebDir); v != "" {
		cfg.Server.WebDir = v
	}
	if v := strings.TrimSpace(flags.LogLevel); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}

func run(flags serverFlags) error {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}
	log := logging.Stderr(cfg.Log.Level)

	if err := os.MkdirAll(cfg.Server.WebDir, 0o755); err != nil {
		return fmt.Errorf("create web dir: %w", err)
	}
	srv, err := server.New(store.New(cfg.Server.WebDir), log, server.Config{Listen: cfg.Server.Listen})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
