// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/shayne/matrix/internal/noise"
)

const (
	NoisePeriod = 50 * time.Millisecond
	ArtPeriod   = 120 * time.Millisecond

	minNoiseWidth = 40
	maxNoiseWidth = 79

	ReadyLine = "SYSTEM READY"
)

// Phase is the stage an Animation is in.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseNoise
	PhaseArt
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseNoise:
		return "noise"
	case PhaseArt:
		return "art"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// TickMsg advances the animation run identified by Token. Ticks from a
// stopped or superseded run are ignored.
type TickMsg struct {
	Token uint64
}

// Scheduler turns a delay and a message into a command delivering it.
type Scheduler func(d time.Duration, msg tea.Msg) tea.Cmd

func teaScheduler(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Animation plays the noise-then-art sequence. It is driven entirely by
// TickMsg values delivered through the program's update loop, so at most
// one tick per run is ever outstanding.
type Animation struct {
	sink     Sink
	rand     *rand.Rand
	now      func() time.Time
	schedule Scheduler
	art      []string
	log      zerolog.Logger

	token    uint64
	seq      uint64
	phase    Phase
	started  time.Time
	duration time.Duration
	artIdx   int
}

type AnimationOption func(*Animation)

func WithRand(r *rand.Rand) AnimationOption {
	return func(a *Animation) { a.rand = r }
}

func WithClock(now func() time.Time) AnimationOption {
	return func(a *Animation) { a.now = now }
}

func WithScheduler(s Scheduler) AnimationOption {
	return func(a *Animation) { a.schedule = s }
}

func WithArt(lines []string) AnimationOption {
	return func(a *Animation) { a.art = lines }
}

func WithAnimationLogger(log zerolog.Logger) AnimationOption {
	return func(a *Animation) { a.log = log }
}

func NewAnimation(sink Sink, opts ...AnimationOption) *Animation {
	a := &Animation{
		sink:     sink,
		now:      time.Now,
		schedule: teaScheduler,
		art:      Art(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rand == nil {
		a.rand = noise.NewSource()
	}
	return a
}

// Start cancels any run in progress and begins a new one whose noise
// phase lasts at least d.
func (a *Animation) Start(d time.Duration) tea.Cmd {
	a.Stop()
	if d < 0 {
		d = 0
	}
	a.seq++
	a.token = a.seq
	a.phase = PhaseNoise
	a.started = a.now()
	a.duration = d
	a.artIdx = 0
	a.log.Debug().Uint64("run", a.token).Dur("duration", d).Msg("animation started")
	return a.schedule(NoisePeriod, TickMsg{Token: a.token})
}

// Stop cancels the current run. It is safe to call at any time.
func (a *Animation) Stop() {
	if a.token == 0 {
		return
	}
	a.log.Debug().Uint64("run", a.token).Stringer("phase", a.phase).Msg("animation stopped")
	a.token = 0
	a.phase = PhaseIdle
}

// Active reports whether a run is in progress.
func (a *Animation) Active() bool {
	return a.token != 0
}

func (a *Animation) Phase() Phase {
	return a.phase
}

// Handle advances the run addressed by msg and returns the next tick, if
// any.
func (a *Animation) Handle(msg TickMsg) tea.Cmd {
	if msg.Token == 0 || msg.Token != a.token {
		return nil
	}
	switch a.phase {
	case PhaseNoise:
		width := minNoiseWidth + a.rand.IntN(maxNoiseWidth-minNoiseWidth+1)
		a.sink.Print(noise.Line(a.rand, width))
		if a.now().Sub(a.started) < a.duration {
			return a.schedule(NoisePeriod, msg)
		}
		a.phase = PhaseArt
		return a.advanceArt(msg)
	case PhaseArt:
		return a.advanceArt(msg)
	default:
		return nil
	}
}

func (a *Animation) advanceArt(msg TickMsg) tea.Cmd {
	if a.artIdx < len(a.art) {
		a.sink.Print(a.art[a.artIdx])
		a.artIdx++
		return a.schedule(ArtPeriod, msg)
	}
	a.sink.Print("")
	a.sink.Print(ReadyLine)
	a.log.Debug().Uint64("run", a.token).Msg("animation finished")
	a.token = 0
	a.phase = PhaseDone
	return nil
}
