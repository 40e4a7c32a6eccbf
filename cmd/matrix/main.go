// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shayne/yargs"
)

func main() {
	if err := runCLI(); err != nil {
		reportCLIError(err)
		os.Exit(1)
	}
}

type usageError struct {
	message string
}

func (e usageError) Error() string {
	return e.message
}

type silentError struct {
	err error
}

func (e silentError) Error() string {
	return e.err.Error()
}

func (e silentError) Unwrap() error {
	return e.err
}

func reportCLIError(err error) {
	var usageErr usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(os.Stderr, usageErr.message)
		return
	}
	var quietErr silentError
	if errors.As(err, &quietErr) {
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func newUsageError(message string) error {
	return usageError{message: message}
}

func newSilentError(err error) error {
	if err == nil {
		return nil
	}
	return silentError{err: err}
}

var (
	version = "dev"
	commit  = ""
)

func runCLI() error {
	if shouldStartShell() {
		return runShell()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := normalizeArgs(os.Args[1:])
	handlers := map[string]yargs.SubcommandHandler{
		"shell":   handleShellCommand,
		"ls":      handleListCommand,
		"new":     handleNewCommand,
		"rm":      handleRemoveCommand,
		"open":    handleOpenCommand,
		"hack":    handleHackCommand,
		"config":  handleConfigCommand,
		"version": handleVersionCommand,
	}
	if err := yargs.RunSubcommands(ctx, args, helpConfig, struct{}{}, handlers); err != nil {
		if errors.Is(err, yargs.ErrShown) {
			return nil
		}
		return err
	}
	return nil
}

type nameArgs struct {
	Name string `pos:"0" help:"project name"`
}

type removeFlags struct {
	Yes bool `flag:"yes" short:"y" help:"skip the confirmation prompt"`
}

type configFlags struct {
	ServerURL    string `flag:"server-url" help:"set the project API base URL"`
	HackDuration string `flag:"hack-duration" help:"set the noise phase length in milliseconds (0 skips to the art)"`
	LogLevel     string `flag:"log-level" help:"set the log level (debug, info, warn, error)"`
	LogFile      string `flag:"log-file" help:"set the console log file"`
	Reset        bool   `flag:"reset" help:"remove the config file"`
}

var helpConfig = yargs.HelpConfig{
	Command: yargs.CommandInfo{
		Name:        "matrix",
		Description: "Project console for the matrix web workspace",
		Examples: []string{
			"matrix",
			"matrix ls",
			"matrix new demo",
			"matrix open demo",
			"matrix rm demo",
			"matrix hack",
			"matrix config --server-url http://127.0.0.1:8000",
		},
	},
	SubCommands: map[string]yargs.SubCommandInfo{
		"shell": {
			Name:        "shell",
			Description: "Start the interactive console",
		},
		"ls": {
			Name:        "ls",
			Description: "List projects",
		},
		"new": {
			Name:        "new",
			Description: "Create a project",
			Usage:       "<name>",
			Examples:    []string{"matrix new demo"},
		},
		"rm": {
			Name:        "rm",
			Description: "Delete a project after typing its name",
			Usage:       "<name> [-y]",
			Examples:    []string{"matrix rm demo", "matrix rm demo -y"},
		},
		"open": {
			Name:        "open",
			Description: "Open a project in the browser",
			Usage:       "<name>",
		},
		"hack": {
			Name:        "hack",
			Description: "Trigger the server and play the matrix",
		},
		"config": {
			Name:        "config",
			Description: "Show or update the local configuration",
			Examples:    []string{"matrix config", "matrix config --hack-duration 1500", "matrix config --reset"},
		},
		"version": {
			Name:        "version",
			Description: "Show CLI version",
		},
	},
}

func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"--help"}
	}
	if args[0] == "--version" {
		return append([]string{"version"}, args[1:]...)
	}
	if args[0] == "help" {
		if len(args) > 1 && isKnownCommand(args[1]) {
			return []string{args[1], "--help"}
		}
		return []string{"--help"}
	}
	return args
}

func isKnownCommand(value string) bool {
	_, ok := helpConfig.SubCommands[value]
	return ok
}

func versionString() string {
	trimmed := strings.TrimSpace(version)
	if trimmed == "" {
		trimmed = "dev"
	}
	if strings.TrimSpace(commit) == "" {
		return trimmed
	}
	return fmt.Sprintf("%s (%s)", trimmed, strings.TrimSpace(commit))
}
