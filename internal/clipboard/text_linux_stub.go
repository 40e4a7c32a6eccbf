// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && !clipboard_x11

package clipboard

// WriteText places text on the system clipboard using whichever command
// line tool the session provides.
func WriteText(text string) error {
	return pipeText(text, commandCopiers())
}
