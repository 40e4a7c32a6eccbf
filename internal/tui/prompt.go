// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// PromptConfirmName asks the user to type name to confirm a destructive
// action. It reports false when the input does not match or the prompt is
// aborted.
func PromptConfirmName(in io.Reader, out io.Writer, name string) (bool, error) {
	title := fmt.Sprintf("Delete project %s?", name)
	description := fmt.Sprintf("This permanently removes %s and all of its files. Type the project name to confirm.", name)
	validate := func(input string) error {
		if strings.TrimSpace(input) != name {
			return fmt.Errorf("type %s to confirm", name)
		}
		return nil
	}
	if useDialogPrompts(in, out) {
		value := ""
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(title).
					Description(description).
					Prompt("> ").
					Placeholder(name).
					Value(&value).
					Validate(validate),
			),
		)
		form.WithInput(in).WithOutput(out).WithTheme(PromptTheme(out))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return false, nil
			}
			return false, err
		}
		return strings.TrimSpace(value) == name, nil
	}

	reader := bufio.NewReader(in)
	printPromptHeader(out, title, description)
	fmt.Fprint(out, "> ")
	line, err := readLine(reader)
	if err != nil {
		return false, err
	}
	if validate(line) != nil {
		fmt.Fprintln(out, "Confirmation did not match.")
		return false, nil
	}
	return true, nil
}

func useDialogPrompts(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(inFile.Fd())) {
		return false
	}
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return false
	}
	return true
}

func printPromptHeader(out io.Writer, title, description string) {
	if strings.TrimSpace(title) != "" {
		fmt.Fprintln(out, title)
	}
	if strings.TrimSpace(description) != "" {
		fmt.Fprintln(out, description)
	}
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimRight(line, "\r\n"), nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
