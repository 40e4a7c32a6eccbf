// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && clipboard_x11

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"
)

var initOnce sync.Once
var initErr error

// WriteText places text on the X11 clipboard, falling back to command
// line tools when no display is reachable.
func WriteText(text string) error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr == nil {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}
	return pipeText(text, commandCopiers())
}
