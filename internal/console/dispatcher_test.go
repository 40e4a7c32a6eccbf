// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shayne/matrix/internal/projects"
)

func expectLines(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("output mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestGreet(t *testing.T) {
	h := newHarness(t, 0)
	h.d.Greet()
	expectLines(t, h.buf.Lines(), []string{"WELCOME TO THE MATRIX", "Type 'help' for commands."})
}

func TestSubmitEmptyLineEchoesPromptOnly(t *testing.T) {
	h := newHarness(t, 0)
	if cmd := h.d.Submit("   "); cmd != nil {
		t.Fatalf("expected no command for blank input")
	}
	expectLines(t, h.buf.Lines(), []string{Prompt})
}

func TestUnknownCommands(t *testing.T) {
	for _, line := range []string{"foo", "Help", "LS", "confirm", "confirm deletep", "deletex p"} {
		h := newHarness(t, 0)
		h.submit(line)
		expectLines(t, h.buf.Lines(), []string{Prompt + line, "Unknown command."})
		if h.d.Session().State() != StateIdle {
			t.Fatalf("%q changed session state", line)
		}
	}
}

func TestHelpListsCommands(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("help")
	out := strings.Join(h.buf.Lines(), "\n")
	for _, want := range []string{"ls", "new <name>", "open <name>", "delete <name>", "confirm delete <name>", "cancel", "hack", "clear"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help missing %q:\n%s", want, out)
		}
	}
	if len(h.client.created)+len(h.client.deleted)+h.client.hacks != 0 {
		t.Fatalf("help must not touch the network")
	}
}

func TestHelpForCommand(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("help delete")
	out := strings.Join(h.buf.Lines(), "\n")
	if !strings.Contains(out, "Usage: delete <name>") {
		t.Fatalf("expected delete usage, got:\n%s", out)
	}
}

func TestClearEmptiesOutput(t *testing.T) {
	h := newHarness(t, 0)
	h.d.Greet()
	h.submit("clear")
	if h.buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", h.buf.Lines())
	}
}

func TestDeleteConfirmIssuesOneRequest(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("delete p")
	expectLines(t, h.buf.Lines(), []string{
		"> delete p",
		"WARNING: project 'p' will be permanently deleted.",
		"Type 'confirm delete p' to proceed, or 'cancel' to abort.",
	})
	if len(h.client.deleted) != 0 {
		t.Fatalf("delete must not call the API before confirmation")
	}
	n := h.buf.Len()
	h.submit("confirm delete p")
	expectLines(t, h.since(n), []string{"> confirm delete p", "Project 'p' deleted."})
	expectLines(t, h.client.deleted, []string{"p"})
	if h.d.Session().State() != StateIdle {
		t.Fatalf("expected idle after confirm")
	}
}

func TestConfirmMismatchSendsNothing(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("delete p")
	n := h.buf.Len()
	h.submit("confirm delete q")
	expectLines(t, h.since(n), []string{"> confirm delete q", "Confirmation did not match 'p'. Delete cancelled."})
	if len(h.client.deleted) != 0 {
		t.Fatalf("expected no delete request, got %v", h.client.deleted)
	}
	n = h.buf.Len()
	h.submit("confirm delete p")
	expectLines(t, h.since(n), []string{"> confirm delete p", "No delete operation pending."})
	if len(h.client.deleted) != 0 {
		t.Fatalf("state should have reset after mismatch")
	}
}

func TestConfirmWithoutNameIsMismatch(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("delete p")
	h.submit("confirm delete")
	if len(h.client.deleted) != 0 {
		t.Fatalf("expected no delete request")
	}
	if h.d.Session().State() != StateIdle {
		t.Fatalf("expected idle")
	}
}

func TestConfirmWhileIdle(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("confirm delete p")
	expectLines(t, h.buf.Lines(), []string{"> confirm delete p", "No delete operation pending."})
	if len(h.client.deleted) != 0 {
		t.Fatalf("expected no delete request")
	}
}

func TestDeleteSupersedesPending(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("delete p")
	h.submit("delete q")
	h.submit("confirm delete q")
	expectLines(t, h.client.deleted, []string{"q"})

	h = newHarness(t, 0)
	h.submit("delete p")
	h.submit("delete q")
	h.submit("confirm delete p")
	if len(h.client.deleted) != 0 {
		t.Fatalf("superseded target must not be deleted, got %v", h.client.deleted)
	}
}

func TestCancel(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("cancel")
	expectLines(t, h.buf.Lines(), []string{"> cancel", "Nothing to cancel."})

	h.submit("delete p")
	n := h.buf.Len()
	h.submit("cancel")
	expectLines(t, h.since(n), []string{"> cancel", "Delete of 'p' cancelled."})
	if h.d.Session().State() != StateIdle {
		t.Fatalf("expected idle after cancel")
	}
	h.submit("confirm delete p")
	if len(h.client.deleted) != 0 {
		t.Fatalf("cancelled delete must not be sent")
	}
}

func TestDeleteResetsBeforeResult(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("delete p")
	cmd := h.d.Submit("confirm delete p")
	if cmd == nil {
		t.Fatalf("expected a request command")
	}
	if h.d.Session().State() != StateIdle {
		t.Fatalf("state should reset before the request completes")
	}
	if !h.d.Busy() {
		t.Fatalf("expected busy while request is outstanding")
	}
	h.run(cmd)
	if h.d.Busy() {
		t.Fatalf("expected idle after result")
	}
}

func TestDeleteFailures(t *testing.T) {
	h := newHarness(t, 0)
	h.client.deleteErr = errUnreachable
	h.submit("delete p")
	n := h.buf.Len()
	h.submit("confirm delete p")
	expectLines(t, h.since(n), []string{"> confirm delete p", "ERROR: failed to delete p (network/server)."})
	if h.d.Session().State() != StateIdle {
		t.Fatalf("expected idle after transport failure")
	}

	h = newHarness(t, 0)
	h.client.deleteRes = projects.Result{Error: "Project not found"}
	h.submit("delete p")
	n = h.buf.Len()
	h.submit("confirm delete p")
	expectLines(t, h.since(n), []string{"> confirm delete p", "ERROR: Project not found"})
}

func TestDeleteUsage(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("delete")
	expectLines(t, h.buf.Lines(), []string{"> delete", "Usage: delete <name>"})
	if h.d.Session().State() != StateIdle {
		t.Fatalf("expected idle")
	}
}

func TestCommandsNeedingNamePrintUsage(t *testing.T) {
	for _, spec := range commandSpecs() {
		if !spec.NeedsArg {
			continue
		}
		h := newHarness(t, 0)
		h.submit(spec.Key)
		expectLines(t, h.buf.Lines(), []string{"> " + spec.Key, "Usage: " + spec.Usage})
		if h.d.Busy() || len(h.client.created) != 0 || len(h.client.deleted) != 0 {
			t.Fatalf("%s without a name should not reach the client", spec.Key)
		}
		if h.d.Session().State() != StateIdle {
			t.Fatalf("%s without a name should leave the session idle", spec.Key)
		}
	}
}

func TestNilClientReportsTransportFailure(t *testing.T) {
	buf := NewBuffer(0)
	d := NewDispatcher(buf, Options{BaseURL: "http://example.test"})
	h := &harness{t: t, buf: buf, d: d}

	h.submit("ls")
	h.submit("new demo")
	h.submit("delete demo")
	h.submit("confirm delete demo")
	lines := buf.Lines()
	for _, want := range []string{
		"ERROR: failed to list projects (network/server).",
		"ERROR: failed to create demo (network/server).",
		"ERROR: failed to delete demo (network/server).",
	} {
		found := false
		for _, line := range lines {
			if line == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing %q in %q", want, lines)
		}
	}
	if d.Busy() {
		t.Fatalf("expected no requests in flight")
	}
	if err := (noClient{}).TriggerHack(context.Background()); !errors.Is(err, ErrNoClient) {
		t.Fatalf("expected ErrNoClient, got %v", err)
	}
}

func TestListProjects(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("ls")
	expectLines(t, h.buf.Lines(), []string{"> ls", "No projects found."})

	h = newHarness(t, 0)
	h.client.projects = []string{"a", "b"}
	h.submit("ls")
	expectLines(t, h.buf.Lines(), []string{"> ls", "a", "b"})
}

func TestListTransportFailure(t *testing.T) {
	h := newHarness(t, 0)
	h.client.listErr = errUnreachable
	h.submit("ls")
	expectLines(t, h.buf.Lines(), []string{"> ls", "ERROR: failed to list projects (network/server)."})
}

func TestCreateProject(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("new demo")
	expectLines(t, h.buf.Lines(), []string{"> new demo", "Project 'demo' created.", "Type 'ls' to see it."})
	expectLines(t, h.client.created, []string{"demo"})
}

func TestCreateProjectErrors(t *testing.T) {
	h := newHarness(t, 0)
	h.client.createRes = projects.Result{Error: "Project already exists"}
	h.submit("new demo")
	expectLines(t, h.buf.Lines(), []string{"> new demo", "ERROR: Project already exists"})

	h = newHarness(t, 0)
	h.client.createErr = errors.New("boom")
	h.submit("new demo")
	expectLines(t, h.buf.Lines(), []string{"> new demo", "ERROR: failed to create demo (network/server)."})

	h = newHarness(t, 0)
	h.submit("new")
	expectLines(t, h.buf.Lines(), []string{"> new", "Usage: new <name>"})
	if len(h.client.created) != 0 {
		t.Fatalf("missing name must not reach the API")
	}
}

func TestOpenProject(t *testing.T) {
	h := newHarness(t, 0)
	opener := &fakeOpener{}
	h.d.opener = opener
	h.submit("open my site")
	expectLines(t, h.buf.Lines(), []string{"> open my site", "Opening my..."})
	expectLines(t, opener.urls, []string{"http://example.test/web/my/"})

	opener.copied = true
	n := h.buf.Len()
	h.submit("open a b")
	expectLines(t, h.since(n), []string{
		"> open a b",
		"Opening a...",
		"No browser available. Copied http://example.test/web/a/ to the clipboard.",
	})

	opener.copied = false
	opener.err = errors.New("no opener")
	n = h.buf.Len()
	h.submit("open x")
	expectLines(t, h.since(n), []string{"> open x", "Opening x...", "Could not open a browser. Visit http://example.test/web/x/"})
}

func TestOpenWithoutOpenerPrintsURL(t *testing.T) {
	h := newHarness(t, 0)
	h.submit("open demo")
	expectLines(t, h.buf.Lines(), []string{"> open demo", "Opening demo...", "http://example.test/web/demo/"})
}

func TestProjectURLEscapes(t *testing.T) {
	h := newHarness(t, 0)
	if got := h.d.ProjectURL("a b"); got != "http://example.test/web/a%20b/" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestExitQuits(t *testing.T) {
	for _, line := range []string{"exit", "quit"} {
		h := newHarness(t, 0)
		cmd := h.d.Submit(line)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", line)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", line)
		}
		if !h.d.Quitting() {
			t.Fatalf("%s: expected Quitting", line)
		}
	}
}

func TestUpdateIgnoresForeignMessages(t *testing.T) {
	h := newHarness(t, 0)
	if _, handled := h.d.Update(tea.KeyMsg{}); handled {
		t.Fatalf("dispatcher should not claim key messages")
	}
}
