// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/shayne/matrix/internal/projects"
)

var errRefused = errors.New("dial tcp 127.0.0.1:8000: connection refused")

type fakeClient struct {
	names   []string
	err     error
	reject  string
	created []string
	deleted []string
	hacks   int
}

func (f *fakeClient) ListProjects(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.names), nil
}

func (f *fakeClient) CreateProject(_ context.Context, name string) (projects.Result, error) {
	if f.err != nil {
		return projects.Result{}, f.err
	}
	if f.reject != "" {
		return projects.Result{Error: f.reject}, nil
	}
	f.created = append(f.created, name)
	f.names = append(f.names, name)
	return projects.Result{OK: true}, nil
}

func (f *fakeClient) DeleteProject(_ context.Context, name string) (projects.Result, error) {
	if f.err != nil {
		return projects.Result{}, f.err
	}
	if f.reject != "" {
		return projects.Result{Error: f.reject}, nil
	}
	f.deleted = append(f.deleted, name)
	f.names = slices.DeleteFunc(f.names, func(n string) bool { return n == name })
	return projects.Result{OK: true}, nil
}

func (f *fakeClient) TriggerHack(context.Context) error {
	f.hacks++
	return f.err
}

type fakeOpener struct {
	urls   []string
	copied bool
	err    error
}

func (f *fakeOpener) Open(url string) (bool, error) {
	f.urls = append(f.urls, url)
	return f.copied, f.err
}

// blockingClient holds TriggerHack until release is closed.
type blockingClient struct {
	fakeClient
	release chan struct{}
}

func (b *blockingClient) TriggerHack(context.Context) error {
	<-b.release
	return nil
}

// lockedBuffer is a bytes.Buffer safe to read while another goroutine writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
