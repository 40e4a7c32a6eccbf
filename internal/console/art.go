// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import "strings"

const artBlock = `
 __  __    _  _____ ____  _____  __
|  \/  |  / \|_   _|  _ \|_ _\ \/ /
| |\/| | / _ \ | | | |_) || | \  /
| |  | |/ ___ \| | |  _ < | | /  \
|_|  |_/_/   \_\_| |_| \_\___/_/\_\

      wake up. the matrix has you.
`

// Art returns the banner revealed after the noise phase, one entry per
// line.
func Art() []string {
	return strings.Split(strings.Trim(artBlock, "\n"), "\n")
}
