// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clipboard writes text to the system clipboard.
package clipboard

import "errors"

var ErrUnavailable = errors.New("clipboard unavailable")
