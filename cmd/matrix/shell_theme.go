// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"
	"sync"

	"github.com/shayne/matrix/internal/console"
	"github.com/shayne/matrix/internal/noise"
	"github.com/shayne/matrix/internal/tui"
)

var (
	shellThemeOnce sync.Once
	shellThemeVal  tui.Theme
)

func shellTheme() tui.Theme {
	shellThemeOnce.Do(func() {
		shellThemeVal = tui.ForOutput(os.Stdout)
	})
	return shellThemeVal
}

type lineKind int

const (
	lineText lineKind = iota
	lineEcho
	lineError
	lineWarning
	lineNoise
)

func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, console.Prompt):
		return lineEcho
	case strings.HasPrefix(line, "ERROR:"):
		return lineError
	case strings.HasPrefix(line, "WARNING:"):
		return lineWarning
	case isNoiseLine(line):
		return lineNoise
	}
	return lineText
}

// isNoiseLine matches the random rows printed by the hack animation.
func isNoiseLine(line string) bool {
	if len(line) < 40 {
		return false
	}
	for _, r := range line {
		if !strings.ContainsRune(noise.Alphabet, r) {
			return false
		}
	}
	return true
}

func renderOutputLine(theme tui.Theme, line string) string {
	if !theme.Enabled || line == "" {
		return line
	}
	switch classifyLine(line) {
	case lineEcho:
		return theme.Prompt.Render(console.Prompt) + theme.Text.Render(strings.TrimPrefix(line, console.Prompt))
	case lineError:
		return theme.Error.Render(line)
	case lineWarning:
		return theme.Warning.Render(line)
	case lineNoise:
		return theme.Noise.Render(line)
	}
	return theme.Text.Render(line)
}
