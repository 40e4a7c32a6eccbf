// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/shayne/matrix/internal/browser"
	"github.com/shayne/matrix/internal/config"
	"github.com/shayne/matrix/internal/console"
	"github.com/shayne/matrix/internal/logging"
	"github.com/shayne/matrix/internal/projects"
)

type shellState struct {
	buf        *console.Buffer
	dispatcher *console.Dispatcher
	cfg        config.Config
	session    string
	log        zerolog.Logger
	quit       bool
}

func newShellState(ctx context.Context, cfg config.Config, client projects.Client, opener console.Opener, log zerolog.Logger) *shellState {
	buf := console.NewBuffer(console.DefaultScrollback)
	session := uuid.NewString()
	log = log.With().Str("session", session).Logger()
	state := &shellState{
		buf:     buf,
		cfg:     cfg,
		session: session,
		log:     log,
	}
	state.dispatcher = console.NewDispatcher(buf, console.Options{
		Client:       client,
		Opener:       opener,
		BaseURL:      cfg.ServerURL,
		HackDuration: cfg.HackDuration(),
		Logger:       &state.log,
		Context:      ctx,
	})
	state.dispatcher.Greet()
	return state
}

func (s *shellState) shortSession() string {
	if len(s.session) > 8 {
		return s.session[:8]
	}
	return s.session
}

func runShell() error {
	cfg, _, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, closer, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := projects.NewHTTPClient(cfg.ServerURL, projects.WithTimeout(cfg.RequestTimeout()))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state := newShellState(ctx, cfg, client, browser.NewLauncher(), log)
	defer state.dispatcher.Stop()
	state.log.Info().Str("server", cfg.ServerURL).Msg("console started")

	program := tea.NewProgram(newShellModel(state), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	state.log.Info().Msg("console closed")
	return nil
}

func shouldStartShell() bool {
	if os.Getenv("MATRIX_NO_SHELL") != "" {
		return false
	}
	if len(os.Args) > 1 {
		return false
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
