// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/shayne/matrix/internal/projects"
)

const (
	Prompt = "> "

	DefaultHackDuration = 3 * time.Second

	confirmPhrase = "confirm delete"
)

// Opener opens a project URL. copied reports that the URL went to the
// clipboard because no browser could be started.
type Opener interface {
	Open(url string) (copied bool, err error)
}

// OutputMsg carries lines produced by background work back onto the
// update loop.
type OutputMsg struct {
	Lines []string
}

// ErrNoClient is reported by project commands when the dispatcher was
// built without a Client.
var ErrNoClient = errors.New("no project client configured")

type Options struct {
	// Client serves ls, new, confirm delete and the hack trigger. When nil
	// those commands report ErrNoClient as a transport failure.
	Client projects.Client

	// Opener opens project pages. When nil, open prints the URL.
	Opener Opener

	// BaseURL is the server root project URLs are built from.
	BaseURL string

	// HackDuration is the noise phase length. Zero prints a single noise
	// line before the art; negative selects DefaultHackDuration.
	HackDuration time.Duration

	// Context bounds network requests. Defaults to context.Background.
	Context context.Context

	Logger    *zerolog.Logger
	Animation []AnimationOption
}

// noClient fails every request with ErrNoClient.
type noClient struct{}

func (noClient) ListProjects(context.Context) ([]string, error) {
	return nil, ErrNoClient
}

func (noClient) CreateProject(context.Context, string) (projects.Result, error) {
	return projects.Result{}, ErrNoClient
}

func (noClient) DeleteProject(context.Context, string) (projects.Result, error) {
	return projects.Result{}, ErrNoClient
}

func (noClient) TriggerHack(context.Context) error {
	return ErrNoClient
}

// Dispatcher routes console input to actions. All of its methods must be
// called from the same goroutine; network work runs in the returned
// commands and reports back through OutputMsg.
type Dispatcher struct {
	sink         Sink
	session      Session
	anim         *Animation
	client       projects.Client
	opener       Opener
	baseURL      string
	hackDuration time.Duration
	ctx          context.Context
	log          zerolog.Logger
	inflight     int
	quit         bool
}

func NewDispatcher(sink Sink, opts Options) *Dispatcher {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	hack := opts.HackDuration
	if hack < 0 {
		hack = DefaultHackDuration
	}
	client := opts.Client
	if client == nil {
		client = noClient{}
	}
	animOpts := append([]AnimationOption{WithAnimationLogger(log)}, opts.Animation...)
	return &Dispatcher{
		sink:         sink,
		anim:         NewAnimation(sink, animOpts...),
		client:       client,
		opener:       opts.Opener,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		hackDuration: hack,
		ctx:          ctx,
		log:          log,
	}
}

// Greet prints the banner shown when the console starts.
func (d *Dispatcher) Greet() {
	d.sink.Print("WELCOME TO THE MATRIX")
	d.sink.Print("Type 'help' for commands.")
}

func (d *Dispatcher) Session() *Session {
	return &d.session
}

func (d *Dispatcher) Animation() *Animation {
	return d.anim
}

// Busy reports whether any request is still outstanding.
func (d *Dispatcher) Busy() bool {
	return d.inflight > 0
}

// Quitting reports whether exit was requested.
func (d *Dispatcher) Quitting() bool {
	return d.quit
}

// Stop cancels the animation.
func (d *Dispatcher) Stop() {
	d.anim.Stop()
}

// ProjectURL is the page a project is served from.
func (d *Dispatcher) ProjectURL(name string) string {
	return ProjectURL(d.baseURL, name)
}

// ProjectURL joins a server base URL and a project name into the
// project's web page.
func ProjectURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/web/" + url.PathEscape(name) + "/"
}

// Submit echoes and interprets one input line.
func (d *Dispatcher) Submit(line string) tea.Cmd {
	cmd, ok := Parse(line)
	if !ok {
		d.sink.Print(Prompt)
		return nil
	}
	d.sink.Print(Prompt + cmd.Raw)
	if rest, ok := matchPhrase(cmd.Raw, confirmPhrase); ok {
		d.log.Debug().Str("verb", confirmPhrase).Msg("dispatch")
		return d.confirmDelete(firstField(rest))
	}
	d.log.Debug().Str("verb", cmd.Name).Msg("dispatch")
	if spec, ok := lookupCommandSpec(cmd.Name); ok && spec.NeedsArg && cmd.Arg(0) == "" {
		d.sink.Print(usageLine(spec.Key))
		return nil
	}
	switch cmd.Name {
	case "help":
		if topic := cmd.Arg(0); topic != "" {
			d.printLines(CommandHelpLines(topic))
			return nil
		}
		d.printLines(HelpLines())
		return nil
	case "clear":
		d.sink.Clear()
		return nil
	case "hack":
		return d.hack()
	case "ls":
		return d.list()
	case "new":
		return d.create(cmd)
	case "delete":
		d.requestDelete(cmd)
		return nil
	case "cancel":
		d.cancel()
		return nil
	case "open":
		return d.open(cmd)
	case "exit", "quit":
		d.anim.Stop()
		d.quit = true
		return tea.Quit
	default:
		d.sink.Print("Unknown command.")
		return nil
	}
}

// Update handles messages produced by commands returned from Submit. It
// reports false for messages it does not own.
func (d *Dispatcher) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case OutputMsg:
		if d.inflight > 0 {
			d.inflight--
		}
		d.printLines(msg.Lines)
		return nil, true
	case TickMsg:
		return d.anim.Handle(msg), true
	}
	return nil, false
}

func (d *Dispatcher) printLines(lines []string) {
	for _, line := range lines {
		d.sink.Print(line)
	}
}

// async runs fn off the update loop. fn must not touch dispatcher state.
func (d *Dispatcher) async(fn func(ctx context.Context) []string) tea.Cmd {
	d.inflight++
	ctx := d.ctx
	return func() tea.Msg {
		return OutputMsg{Lines: fn(ctx)}
	}
}

func (d *Dispatcher) hack() tea.Cmd {
	client := d.client
	log := d.log
	ctx := d.ctx
	trigger := func() tea.Msg {
		if err := client.TriggerHack(ctx); err != nil {
			log.Warn().Err(err).Msg("hack trigger failed")
		}
		return nil
	}
	tick := d.anim.Start(d.hackDuration)
	d.sink.Print("ACCESS GRANTED")
	return tea.Batch(trigger, tick)
}

func (d *Dispatcher) list() tea.Cmd {
	client := d.client
	log := d.log
	return d.async(func(ctx context.Context) []string {
		names, err := client.ListProjects(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("list projects failed")
			return []string{"ERROR: failed to list projects (network/server)."}
		}
		if len(names) == 0 {
			return []string{"No projects found."}
		}
		return append([]string(nil), names...)
	})
}

func (d *Dispatcher) create(cmd Command) tea.Cmd {
	name := cmd.Arg(0)
	client := d.client
	log := d.log
	return d.async(func(ctx context.Context) []string {
		res, err := client.CreateProject(ctx, name)
		if err != nil {
			log.Warn().Err(err).Str("project", name).Msg("create project failed")
			return []string{fmt.Sprintf("ERROR: failed to create %s (network/server).", name)}
		}
		if res.Error != "" {
			return []string{"ERROR: " + res.Error}
		}
		return []string{
			fmt.Sprintf("Project '%s' created.", name),
			"Type 'ls' to see it.",
		}
	})
}

func (d *Dispatcher) requestDelete(cmd Command) {
	name := cmd.Arg(0)
	if prev, had := d.session.Request(name); had {
		d.log.Debug().Str("previous", prev).Str("project", name).Msg("pending delete superseded")
	}
	d.sink.Print(fmt.Sprintf("WARNING: project '%s' will be permanently deleted.", name))
	d.sink.Print(fmt.Sprintf("Type 'confirm delete %s' to proceed, or 'cancel' to abort.", name))
}

func (d *Dispatcher) confirmDelete(name string) tea.Cmd {
	outcome, target := d.session.Confirm(name)
	switch outcome {
	case ConfirmNone:
		d.sink.Print("No delete operation pending.")
		return nil
	case ConfirmMismatched:
		d.sink.Print(fmt.Sprintf("Confirmation did not match '%s'. Delete cancelled.", target))
		return nil
	}
	client := d.client
	log := d.log
	return d.async(func(ctx context.Context) []string {
		res, err := client.DeleteProject(ctx, target)
		if err != nil {
			log.Warn().Err(err).Str("project", target).Msg("delete project failed")
			return []string{fmt.Sprintf("ERROR: failed to delete %s (network/server).", target)}
		}
		if res.Error != "" {
			return []string{"ERROR: " + res.Error}
		}
		return []string{fmt.Sprintf("Project '%s' deleted.", target)}
	})
}

func (d *Dispatcher) cancel() {
	target, had := d.session.Cancel()
	if !had {
		d.sink.Print("Nothing to cancel.")
		return
	}
	d.sink.Print(fmt.Sprintf("Delete of '%s' cancelled.", target))
}

func (d *Dispatcher) open(cmd Command) tea.Cmd {
	name := cmd.Arg(0)
	target := d.ProjectURL(name)
	d.sink.Print(fmt.Sprintf("Opening %s...", name))
	if d.opener == nil {
		d.sink.Print(target)
		return nil
	}
	opener := d.opener
	log := d.log
	return d.async(func(context.Context) []string {
		copied, err := opener.Open(target)
		if err != nil {
			log.Warn().Err(err).Str("url", target).Msg("open failed")
			return []string{"Could not open a browser. Visit " + target}
		}
		if copied {
			return []string{"No browser available. Copied " + target + " to the clipboard."}
		}
		return nil
	})
}
