// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

// State is the confirmation state of a Session.
type State int

const (
	StateIdle State = iota
	StateAwaitingConfirm
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingConfirm:
		return "awaiting-confirm"
	default:
		return "unknown"
	}
}

// Confirmation is the outcome of a confirm attempt.
type Confirmation int

const (
	// ConfirmNone means nothing was pending.
	ConfirmNone Confirmation = iota
	ConfirmMatched
	ConfirmMismatched
)

// Session holds the one piece of memory that spans commands: the project
// whose deletion awaits confirmation.
type Session struct {
	pending  string
	awaiting bool
}

func (s *Session) State() State {
	if s.awaiting {
		return StateAwaitingConfirm
	}
	return StateIdle
}

// Pending returns the project awaiting confirmation.
func (s *Session) Pending() (string, bool) {
	return s.pending, s.awaiting
}

// Request marks name as pending deletion. Any earlier pending target is
// replaced and returned.
func (s *Session) Request(name string) (string, bool) {
	prev, had := s.pending, s.awaiting
	s.pending = name
	s.awaiting = true
	return prev, had
}

// Confirm resolves the pending deletion against name and always returns
// the session to idle. The returned target is the name that was pending.
func (s *Session) Confirm(name string) (Confirmation, string) {
	target, had := s.pending, s.awaiting
	s.reset()
	if !had {
		return ConfirmNone, ""
	}
	if name != target {
		return ConfirmMismatched, target
	}
	return ConfirmMatched, target
}

// Cancel drops the pending deletion, returning what was pending.
func (s *Session) Cancel() (string, bool) {
	target, had := s.pending, s.awaiting
	s.reset()
	return target, had
}

func (s *Session) reset() {
	s.pending = ""
	s.awaiting = false
}
