// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	matrixGreen = lipgloss.Color("#00FF41")
	dimGreen    = lipgloss.Color("#008F11")
	darkGreen   = lipgloss.Color("#003B00")
	alertRed    = lipgloss.Color("#FF3B3B")
	warnAmber   = lipgloss.Color("#FFB000")
)

// Theme holds the styles shared by the console and one-shot commands. A
// zero Theme renders text unchanged.
type Theme struct {
	Enabled bool
	Brand   lipgloss.Style
	Prompt  lipgloss.Style
	Text    lipgloss.Style
	Noise   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Status  lipgloss.Style
	Huh     *huh.Theme
}

// ForOutput returns the theme for out, or a plain theme when out is not a
// colour-capable terminal.
func ForOutput(out io.Writer) Theme {
	if !EnabledForOutput(out) {
		return Theme{}
	}
	return matrixTheme()
}

func EnabledForOutput(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	termValue := os.Getenv("TERM")
	if termValue == "" || termValue == "dumb" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func matrixTheme() Theme {
	return Theme{
		Enabled: true,
		Brand:   lipgloss.NewStyle().Foreground(matrixGreen).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(matrixGreen).Bold(true),
		Text:    lipgloss.NewStyle().Foreground(matrixGreen),
		Noise:   lipgloss.NewStyle().Foreground(dimGreen),
		Muted:   lipgloss.NewStyle().Foreground(darkGreen),
		Error:   lipgloss.NewStyle().Foreground(alertRed).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(warnAmber).Bold(true),
		Status:  lipgloss.NewStyle().Foreground(dimGreen),
		Huh:     huhTheme(),
	}
}

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(matrixGreen).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(dimGreen)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(alertRed)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(alertRed)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(matrixGreen)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(matrixGreen)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(darkGreen)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	return t
}

// PromptTheme is the huh theme for prompts written to out.
func PromptTheme(out io.Writer) *huh.Theme {
	selected := ForOutput(out)
	if selected.Enabled && selected.Huh != nil {
		return selected.Huh
	}
	return huh.ThemeBase()
}
