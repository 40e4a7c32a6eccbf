// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import "io"

const (
	ColorGreen  = "\x1b[92m"
	ColorRed    = "\x1b[91m"
	ColorYellow = "\x1b[93m"
	ColorDim    = "\x1b[2m"
	ColorReset  = "\x1b[0m"
)

// Colorizer wraps text in ANSI codes for one-shot command output.
type Colorizer struct {
	Enabled bool
}

func NewColorizer(out io.Writer, enabled bool) Colorizer {
	if !enabled || !EnabledForOutput(out) {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(code, text string) string {
	if !c.Enabled || code == "" {
		return text
	}
	return code + text + ColorReset
}

func (c Colorizer) Green(text string) string {
	return c.Wrap(ColorGreen, text)
}

func (c Colorizer) Red(text string) string {
	return c.Wrap(ColorRed, text)
}

func (c Colorizer) Yellow(text string) string {
	return c.Wrap(ColorYellow, text)
}
