// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package clipboard

import (
	"os"
	"os/exec"
	"strings"
)

type copier struct {
	name string
	args []string
}

// isWSL reports whether we run under Windows Subsystem for Linux.
func isWSL() bool {
	if data, err := os.ReadFile("/proc/version"); err == nil {
		version := strings.ToLower(string(data))
		if strings.Contains(version, "microsoft") || strings.Contains(version, "wsl") {
			return true
		}
	}
	return os.Getenv("WSL_DISTRO_NAME") != "" || os.Getenv("WSL_INTEROP") != ""
}

// commandCopiers lists the clipboard tools worth trying in this session.
func commandCopiers() []copier {
	var out []copier
	if isWSL() {
		out = append(out, copier{name: "clip.exe"})
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		out = append(out, copier{name: "wl-copy"})
	}
	if os.Getenv("DISPLAY") != "" {
		out = append(out,
			copier{name: "xclip", args: []string{"-selection", "clipboard"}},
			copier{name: "xsel", args: []string{"--clipboard", "--input"}},
		)
	}
	return out
}

// pipeText feeds text to the first copier that runs successfully.
func pipeText(text string, candidates []copier) error {
	for _, c := range candidates {
		path, err := exec.LookPath(c.name)
		if err != nil {
			continue
		}
		cmd := exec.Command(path, c.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return ErrUnavailable
}
