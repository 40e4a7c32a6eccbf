// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"fmt"
	"strings"
)

type helpLine struct {
	cmd    string
	desc   string
	indent bool
}

func visibleHelpLines() []helpLine {
	specs := commandSpecs()
	lines := make([]helpLine, 0, len(specs))
	for _, spec := range specs {
		if spec.Hidden {
			continue
		}
		lines = append(lines, helpLine{cmd: spec.Display, desc: spec.Summary})
		for _, child := range spec.Children {
			lines = append(lines, helpLine{cmd: child.Cmd, desc: child.Desc, indent: true})
		}
	}
	return lines
}

// HelpLines renders the command listing.
func HelpLines() []string {
	lines := visibleHelpLines()
	maxWidth := 0
	for _, line := range lines {
		if w := helpWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	rows := []string{"Commands:"}
	for _, line := range lines {
		prefix := "  "
		if line.indent {
			prefix += "  "
		}
		pad := strings.Repeat(" ", maxWidth-helpWidth(line))
		rows = append(rows, fmt.Sprintf("%s%s%s  # %s", prefix, line.cmd, pad, line.desc))
	}
	rows = append(rows, "", "Run `help <command>` for more details.")
	return rows
}

func helpWidth(line helpLine) int {
	if line.indent {
		return len(line.cmd) + 2
	}
	return len(line.cmd)
}

// CommandHelpLines renders the detail page for one command.
func CommandHelpLines(name string) []string {
	spec, ok := lookupCommandSpec(name)
	if !ok {
		return []string{fmt.Sprintf("Unknown command: %s", name)}
	}
	lines := []string{"Command: " + spec.Display}
	if strings.TrimSpace(spec.Description) != "" {
		lines = append(lines, "", spec.Description)
	}
	if strings.TrimSpace(spec.Usage) != "" {
		lines = append(lines, "", "Usage: "+spec.Usage)
	}
	if len(spec.Examples) > 0 {
		lines = append(lines, "", "Examples:")
		for _, ex := range spec.Examples {
			lines = append(lines, "  "+ex)
		}
	}
	return lines
}

func usageLine(key string) string {
	spec, ok := lookupCommandSpec(key)
	if !ok {
		return ""
	}
	return "Usage: " + spec.Usage
}
