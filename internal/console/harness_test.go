// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shayne/matrix/internal/projects"
)

var errUnreachable = errors.New("dial tcp: connection refused")

type fakeClient struct {
	mu        sync.Mutex
	projects  []string
	listErr   error
	createRes projects.Result
	createErr error
	deleteRes projects.Result
	deleteErr error
	hackErr   error

	created []string
	deleted []string
	hacks   int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		createRes: projects.Result{OK: true},
		deleteRes: projects.Result{OK: true},
	}
}

func (c *fakeClient) ListProjects(context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listErr != nil {
		return nil, c.listErr
	}
	return append([]string(nil), c.projects...), nil
}

func (c *fakeClient) CreateProject(_ context.Context, name string) (projects.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = append(c.created, name)
	return c.createRes, c.createErr
}

func (c *fakeClient) DeleteProject(_ context.Context, name string) (projects.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, name)
	return c.deleteRes, c.deleteErr
}

func (c *fakeClient) TriggerHack(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hacks++
	return c.hackErr
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type fakeOpener struct {
	urls   []string
	copied bool
	err    error
}

func (o *fakeOpener) Open(url string) (bool, error) {
	o.urls = append(o.urls, url)
	return o.copied, o.err
}

type harness struct {
	t      *testing.T
	buf    *Buffer
	client *fakeClient
	clock  *fakeClock
	d      *Dispatcher
	// delays records every timer the animation asked for, in order.
	delays []time.Duration
}

// newHarness builds a dispatcher whose timers fire instantly and advance a
// fake clock by their delay.
func newHarness(t *testing.T, hack time.Duration) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		buf:    NewBuffer(0),
		client: newFakeClient(),
		clock:  &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	h.d = NewDispatcher(h.buf, Options{
		Client:       h.client,
		BaseURL:      "http://example.test/",
		HackDuration: hack,
		Animation: []AnimationOption{
			WithRand(rand.New(rand.NewPCG(1, 2))),
			WithClock(h.clock.Now),
			WithScheduler(h.schedule),
		},
	})
	return h
}

func (h *harness) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	h.delays = append(h.delays, d)
	return func() tea.Msg {
		h.clock.now = h.clock.now.Add(d)
		return msg
	}
}

// submit types line and runs every resulting command to completion.
func (h *harness) submit(line string) {
	h.t.Helper()
	h.run(h.d.Submit(line))
}

func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 10000 {
			h.t.Fatalf("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			follow, _ := h.d.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// since returns the output produced after the first n lines.
func (h *harness) since(n int) []string {
	lines := h.buf.Lines()
	if n > len(lines) {
		return nil
	}
	return append([]string(nil), lines[n:]...)
}
