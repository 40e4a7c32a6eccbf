// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/shayne/yargs"

	"github.com/shayne/matrix/internal/browser"
	"github.com/shayne/matrix/internal/config"
	"github.com/shayne/matrix/internal/console"
	"github.com/shayne/matrix/internal/logging"
	"github.com/shayne/matrix/internal/projects"
	"github.com/shayne/matrix/internal/tui"
)

// cliEnv carries what one-shot commands need.
type cliEnv struct {
	cfg    config.Config
	client projects.Client
	opener console.Opener
	in     io.Reader
	out    io.Writer
	color  tui.Colorizer
	log    zerolog.Logger
}

func loadEnv() (*cliEnv, func(), error) {
	cfg, _, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	client, err := projects.NewHTTPClient(cfg.ServerURL, projects.WithTimeout(cfg.RequestTimeout()))
	if err != nil {
		return nil, nil, err
	}
	log, closer, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	env := &cliEnv{
		cfg:    cfg,
		client: client,
		opener: browser.NewLauncher(),
		in:     os.Stdin,
		out:    os.Stdout,
		color:  tui.NewColorizer(os.Stdout, true),
		log:    log,
	}
	return env, func() { _ = closer.Close() }, nil
}

func withEnv(fn func(*cliEnv) error) error {
	env, done, err := loadEnv()
	if err != nil {
		return err
	}
	defer done()
	return fn(env)
}

func parseName(args []string) (string, error) {
	result, err := yargs.ParseAndHandleHelp[struct{}, struct{}, nameArgs](args, helpConfig)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(result.Args.Name)
	if name == "" {
		return "", newUsageError("project name is required")
	}
	return name, nil
}

func handleShellCommand(_ context.Context, args []string) error {
	_, err := yargs.ParseAndHandleHelp[struct{}, struct{}, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	return runShell()
}

func handleListCommand(ctx context.Context, args []string) error {
	_, err := yargs.ParseAndHandleHelp[struct{}, struct{}, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	return withEnv(func(env *cliEnv) error { return runList(ctx, env) })
}

func handleNewCommand(ctx context.Context, args []string) error {
	name, err := parseName(args)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	return withEnv(func(env *cliEnv) error { return runCreate(ctx, env, name) })
}

func handleRemoveCommand(ctx context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, removeFlags, nameArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	name := strings.TrimSpace(result.Args.Name)
	if name == "" {
		return newUsageError("project name is required")
	}
	yes := result.SubCommandFlags.Yes
	return withEnv(func(env *cliEnv) error { return runRemove(ctx, env, name, yes) })
}

func handleOpenCommand(_ context.Context, args []string) error {
	name, err := parseName(args)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	return withEnv(func(env *cliEnv) error { return runOpen(env, name) })
}

func handleHackCommand(ctx context.Context, args []string) error {
	_, err := yargs.ParseAndHandleHelp[struct{}, struct{}, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	return withEnv(func(env *cliEnv) error { return runHack(ctx, env) })
}

func handleVersionCommand(_ context.Context, args []string) error {
	_, err := yargs.ParseAndHandleHelp[struct{}, struct{}, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, versionString())
	return nil
}

func runList(ctx context.Context, env *cliEnv) error {
	names, err := env.client.ListProjects(ctx)
	if err != nil {
		env.log.Warn().Err(err).Msg("list projects failed")
		return fmt.Errorf("failed to list projects: %w", err)
	}
	if len(names) == 0 {
		fmt.Fprintln(env.out, "No projects found.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(env.out, name)
	}
	return nil
}

func runCreate(ctx context.Context, env *cliEnv, name string) error {
	res, err := env.client.CreateProject(ctx, name)
	if err != nil {
		env.log.Warn().Err(err).Str("project", name).Msg("create project failed")
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if res.Error != "" {
		return errors.New("ERROR: " + res.Error)
	}
	fmt.Fprintf(env.out, "%s\n", env.color.Green(fmt.Sprintf("Project '%s' created.", name)))
	fmt.Fprintln(env.out, "Run 'matrix ls' to see it.")
	return nil
}

func runRemove(ctx context.Context, env *cliEnv, name string, yes bool) error {
	if !yes {
		ok, err := tui.PromptConfirmName(env.in, env.out, name)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(env.out, "Delete cancelled.")
			return newSilentError(errors.New("delete cancelled"))
		}
	}
	res, err := env.client.DeleteProject(ctx, name)
	if err != nil {
		env.log.Warn().Err(err).Str("project", name).Msg("delete project failed")
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	if res.Error != "" {
		return errors.New("ERROR: " + res.Error)
	}
	fmt.Fprintln(env.out, env.color.Green(fmt.Sprintf("Project '%s' deleted.", name)))
	return nil
}

func runOpen(env *cliEnv, name string) error {
	target := console.ProjectURL(env.cfg.ServerURL, name)
	fmt.Fprintf(env.out, "Opening %s...\n", name)
	copied, err := env.opener.Open(target)
	if err != nil {
		env.log.Warn().Err(err).Str("url", target).Msg("open failed")
		fmt.Fprintf(env.out, "Could not open a browser. Visit %s\n", target)
		return nil
	}
	if copied {
		fmt.Fprintf(env.out, "No browser available. Copied %s to the clipboard.\n", target)
	}
	return nil
}

// runHack fires the trigger in the background and plays the animation
// inline on env.out. Interrupting ctx stops the animation without error.
func runHack(ctx context.Context, env *cliEnv) error {
	triggered := make(chan struct{})
	go func() {
		defer close(triggered)
		if err := env.client.TriggerHack(ctx); err != nil {
			env.log.Warn().Err(err).Msg("hack trigger failed")
		}
	}()
	fmt.Fprintln(env.out, env.color.Green("ACCESS GRANTED"))
	err := playAnimation(ctx, env.out, env.cfg.HackDuration(), env.color)
	<-triggered
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type writerSink struct {
	out   io.Writer
	color tui.Colorizer
}

func (s writerSink) Print(line string) {
	fmt.Fprintln(s.out, s.color.Green(line))
}

func (s writerSink) Clear() {}

func playAnimation(ctx context.Context, out io.Writer, d time.Duration, color tui.Colorizer) error {
	sleep := func(delay time.Duration, msg tea.Msg) tea.Cmd {
		return func() tea.Msg {
			t := time.NewTimer(delay)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				return msg
			}
		}
	}
	anim := console.NewAnimation(writerSink{out: out, color: color}, console.WithScheduler(sleep))
	cmd := anim.Start(d)
	for cmd != nil {
		tick, ok := cmd().(console.TickMsg)
		if !ok {
			anim.Stop()
			return ctx.Err()
		}
		cmd = anim.Handle(tick)
	}
	return nil
}

func handleConfigCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, configFlags, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	flags := result.SubCommandFlags
	if flags.Reset {
		if err := config.RemoveConfigFiles(); err != nil {
			return fmt.Errorf("failed to remove config: %w", err)
		}
		fmt.Fprintln(os.Stdout, "Config removed.")
		return nil
	}

	cfg, path, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	updated, err := applyConfigFlags(&cfg, flags)
	if err != nil {
		return err
	}
	if !updated {
		return showConfig(os.Stdout, cfg, path)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Updated config at %s\n", path)
	return nil
}

func applyConfigFlags(cfg *config.Config, flags configFlags) (bool, error) {
	updated := false
	if v := strings.TrimSpace(flags.ServerURL); v != "" {
		cfg.ServerURL = strings.TrimRight(v, "/")
		if err := cfg.Validate(); err != nil {
			return false, newUsageError(err.Error())
		}
		updated = true
	}
	if v := strings.TrimSpace(flags.HackDuration); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return false, newUsageError("--hack-duration must be a non-negative number of milliseconds")
		}
		cfg.HackDurationMS = ms
		updated = true
	}
	if v := strings.TrimSpace(flags.LogLevel); v != "" {
		cfg.Log.Level = v
		updated = true
	}
	if v := strings.TrimSpace(flags.LogFile); v != "" {
		cfg.Log.File = v
		updated = true
	}
	return updated, nil
}

func showConfig(out io.Writer, cfg config.Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}
	fmt.Fprintf(out, "Config path: %s\n%s\n", path, string(data))
	return nil
}
