// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

// Sink receives console output one line at a time.
type Sink interface {
	Print(line string)
	Clear()
}

// DefaultScrollback bounds how many lines a Buffer keeps.
const DefaultScrollback = 2000

// Buffer is an in-memory Sink that keeps the most recent lines.
type Buffer struct {
	lines []string
	max   int
}

func NewBuffer(max int) *Buffer {
	if max <= 0 {
		max = DefaultScrollback
	}
	return &Buffer{max: max}
}

func (b *Buffer) Print(line string) {
	b.lines = append(b.lines, line)
	if over := len(b.lines) - b.max; over > 0 {
		b.lines = append(b.lines[:0:0], b.lines[over:]...)
	}
}

func (b *Buffer) Clear() {
	b.lines = nil
}

// Lines returns the buffered lines, oldest first. The slice must not be
// modified.
func (b *Buffer) Lines() []string {
	return b.lines
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

// Tail returns at most n of the newest lines.
func (b *Buffer) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	if n >= len(b.lines) {
		return b.lines
	}
	return b.lines[len(b.lines)-n:]
}

// Last returns the newest line, or "" when the buffer is empty.
func (b *Buffer) Last() string {
	if len(b.lines) == 0 {
		return ""
	}
	return b.lines[len(b.lines)-1]
}
