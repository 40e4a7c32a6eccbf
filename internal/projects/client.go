// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package projects talks to the project API.
package projects

import "context"

// Result is the outcome of a create or delete request. A non-empty Error
// means the server rejected the request.
type Result struct {
	OK    bool
	Error string
}

// Client is the set of project API operations the console consumes.
type Client interface {
	ListProjects(ctx context.Context) ([]string, error)
	CreateProject(ctx context.Context, name string) (Result, error)
	DeleteProject(ctx context.Context, name string) (Result, error)
	TriggerHack(ctx context.Context) error
}
