// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"strings"
	"unicode"
)

// Command is one parsed input line. Parsing is shallow: multi-word verbs
// are recognised by the dispatcher against Raw.
type Command struct {
	Name string
	Args []string
	Raw  string
}

// Parse trims line and splits it into a verb and whitespace-separated
// arguments. It reports false for blank input.
func Parse(line string) (Command, bool) {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Command{}, false
	}
	fields := strings.Fields(raw)
	return Command{Name: fields[0], Args: fields[1:], Raw: raw}, true
}

// Arg returns the i-th argument or "" when absent.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// matchPhrase reports whether raw starts with the literal phrase followed
// by whitespace or the end of input, and returns the rest.
func matchPhrase(raw, phrase string) (string, bool) {
	if !strings.HasPrefix(raw, phrase) {
		return "", false
	}
	rest := raw[len(phrase):]
	if rest == "" {
		return "", true
	}
	r := []rune(rest)[0]
	if !unicode.IsSpace(r) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
