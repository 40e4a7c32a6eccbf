// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shayne/matrix/internal/console"
)

type shellModel struct {
	state      *shellState
	input      textinput.Model
	promptSpin spinner.Model
	width      int
	height     int
}

func newShellModel(state *shellState) shellModel {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = ""
	input.Focus()
	input.CharLimit = 0
	input.Width = 80

	spin := spinner.New()
	spin.Spinner = spinner.Spinner{Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}, FPS: 120 * time.Millisecond}

	return shellModel{
		state:      state,
		input:      input,
		promptSpin: spin,
	}
}

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.promptSpin.Tick)
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			// Clear the current input without exiting, like a shell.
			m.input.SetValue("")
			m.input.CursorEnd()
			return m, nil
		case tea.KeyCtrlL:
			m.state.buf.Clear()
			return m, tea.ClearScreen
		case tea.KeyCtrlD:
			if strings.TrimSpace(m.input.Value()) == "" {
				m.state.dispatcher.Stop()
				m.state.quit = true
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			cmd := m.state.dispatcher.Submit(line)
			if m.state.dispatcher.Quitting() {
				m.state.quit = true
			}
			return m, cmd
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.promptSpin, cmd = m.promptSpin.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width > 0 {
			m.input.Width = m.width - len(console.Prompt) - 1
			if m.input.Width < 10 {
				m.input.Width = 10
			}
		}
		return m, nil
	}

	if cmd, ok := m.state.dispatcher.Update(msg); ok {
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	theme := shellTheme()
	header := renderHeader(m)
	var outputLines []string
	if m.height > 0 {
		available := m.height - countLines(header) - 2
		if available < 0 {
			available = 0
		}
		outputLines = m.state.buf.Tail(available)
	} else {
		outputLines = m.state.buf.Lines()
	}
	lines := make([]string, 0, len(outputLines)+3)
	lines = append(lines, header, "")
	for _, line := range outputLines {
		lines = append(lines, renderOutputLine(theme, line))
	}
	lines = append(lines, renderPrompt(m))
	return strings.Join(lines, "\n")
}

func renderHeader(m shellModel) string {
	theme := shellTheme()
	state := m.state
	status := "●"
	if state.dispatcher.Busy() {
		status = m.promptSpin.View()
	}
	activity := ""
	if anim := state.dispatcher.Animation(); anim.Active() {
		activity = "  " + anim.Phase().String()
	}
	if !theme.Enabled {
		return status + " matrix  server=" + state.cfg.ServerURL + "  session=" + state.shortSession() + activity
	}
	return theme.Status.Render(status) + " " +
		theme.Brand.Render("matrix") + "  " +
		theme.Muted.Render("server=") + theme.Text.Render(state.cfg.ServerURL) + "  " +
		theme.Muted.Render("session=") + theme.Text.Render(state.shortSession()) +
		theme.Warning.Render(activity)
}

func renderPrompt(m shellModel) string {
	theme := shellTheme()
	if !theme.Enabled {
		return console.Prompt + m.input.View()
	}
	return theme.Prompt.Render(console.Prompt) + m.input.View()
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
