// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package browser opens project pages for the user.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/shayne/matrix/internal/clipboard"
)

var ErrNoOpener = errors.New("no opener available")

// Open starts the platform URL handler for raw without waiting for it.
func Open(raw string) error {
	switch runtime.GOOS {
	case "darwin":
		if path, err := exec.LookPath("open"); err == nil {
			return exec.Command(path, raw).Start()
		}
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", raw).Start()
	default:
		if path, err := exec.LookPath("xdg-open"); err == nil {
			return exec.Command(path, raw).Start()
		}
		if path, err := exec.LookPath("open"); err == nil {
			return exec.Command(path, raw).Start()
		}
	}
	return ErrNoOpener
}

// Launcher opens URLs and falls back to the clipboard when no browser can
// be started.
type Launcher struct {
	open func(string) error
	copy func(string) error
}

func NewLauncher() *Launcher {
	return &Launcher{open: Open, copy: clipboard.WriteText}
}

// Open reports copied=true when the URL was placed on the clipboard
// instead of opened.
func (l *Launcher) Open(url string) (bool, error) {
	openErr := l.open(url)
	if openErr == nil {
		return false, nil
	}
	copyErr := l.copy(url)
	if copyErr == nil {
		return true, nil
	}
	return false, fmt.Errorf("open %s: %w", url, errors.Join(openErr, copyErr))
}
