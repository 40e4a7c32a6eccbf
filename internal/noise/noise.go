// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package noise generates the random character lines used by the console
// animation and the server-side burst.
package noise

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// Alphabet is the fixed set of characters noise lines are drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	green = "\x1b[92m"
	reset = "\x1b[0m"
)

// Line returns n characters drawn uniformly from Alphabet.
func Line(r *rand.Rand, n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(Alphabet[r.IntN(len(Alphabet))])
	}
	return b.String()
}

// NewSource returns a random source seeded from the clock.
func NewSource() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>17|1))
}

type BurstOptions struct {
	Lines int
	Width int
	Delay time.Duration
	Color bool
}

// DefaultBurst matches the burst printed when the hack trigger fires.
func DefaultBurst() BurstOptions {
	return BurstOptions{Lines: 55, Width: 70, Delay: 25 * time.Millisecond, Color: true}
}

var writeMu sync.Mutex

// Burst writes opts.Lines noise lines to w, sleeping opts.Delay between
// them. Concurrent bursts interleave by line, never within a line.
func Burst(w io.Writer, r *rand.Rand, opts BurstOptions) error {
	for i := 0; i < opts.Lines; i++ {
		line := Line(r, opts.Width)
		if opts.Color {
			line = green + line + reset
		}
		writeMu.Lock()
		_, err := fmt.Fprintln(w, line)
		writeMu.Unlock()
		if err != nil {
			return err
		}
		if opts.Delay > 0 && i < opts.Lines-1 {
			time.Sleep(opts.Delay)
		}
	}
	return nil
}
