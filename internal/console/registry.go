// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import "strings"

type HelpChild struct {
	Cmd  string
	Desc string
}

type CommandSpec struct {
	Key         string
	Display     string
	Aliases     []string
	Summary     string
	Description string
	Usage       string
	Examples    []string
	Children    []HelpChild
	Hidden      bool
	// NeedsArg commands print their usage instead of calling the API when
	// the name argument is missing.
	NeedsArg bool
}

func commandSpecs() []CommandSpec {
	return []CommandSpec{
		{Key: "help", Display: "help", Summary: "show this help", Description: "Show help, or help for a specific command.", Usage: "help [command]", Examples: []string{"help", "help delete"}},
		{Key: "ls", Display: "ls", Summary: "list projects", Description: "List projects on the server.", Usage: "ls", Examples: []string{"ls"}},
		{Key: "new", Display: "new <name>", Summary: "create a project", Description: "Create a new project with a starter page.", Usage: "new <name>", Examples: []string{"new demo"}, NeedsArg: true},
		{Key: "open", Display: "open <name>", Summary: "open a project", Description: "Open the project's page in your browser. The URL is copied to the clipboard when no browser is available.", Usage: "open <name>", Examples: []string{"open demo"}, NeedsArg: true},
		{Key: "delete", Display: "delete <name>", Summary: "delete a project", Description: "Ask to delete a project. Nothing is removed until the deletion is confirmed.", Usage: "delete <name>", Examples: []string{"delete demo"}, NeedsArg: true, Children: []HelpChild{
			{Cmd: "confirm delete <name>", Desc: "confirm the pending delete"},
			{Cmd: "cancel", Desc: "abort the pending delete"},
		}},
		{Key: "confirm", Display: "confirm delete <name>", Summary: "confirm a pending delete", Description: "Delete the pending project. The name must match the one given to delete.", Usage: "confirm delete <name>", Examples: []string{"confirm delete demo"}, Hidden: true},
		{Key: "cancel", Display: "cancel", Summary: "abort a pending delete", Description: "Abort the pending delete.", Usage: "cancel", Hidden: true},
		{Key: "hack", Display: "hack", Summary: "enter the matrix", Description: "Trigger the server and play the matrix animation.", Usage: "hack", Examples: []string{"hack"}},
		{Key: "clear", Display: "clear", Summary: "clear the screen", Description: "Clear the console output.", Usage: "clear"},
		{Key: "exit", Display: "exit", Aliases: []string{"quit"}, Summary: "exit the console", Description: "Exit the console.", Usage: "exit", Hidden: true},
	}
}

func lookupCommandSpec(name string) (CommandSpec, bool) {
	name = strings.TrimSpace(name)
	for _, spec := range commandSpecs() {
		if spec.Key == name {
			return spec, true
		}
		for _, alias := range spec.Aliases {
			if alias == name {
				return spec, true
			}
		}
	}
	return CommandSpec{}, false
}
