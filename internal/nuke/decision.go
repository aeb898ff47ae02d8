// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nuke

import "strings"

// NukeTag is the opt-in tag gating termination. Only resources carrying
// CanNuke=true may be destroyed; everything else is at most stopped.
const NukeTag = "CanNuke"

// Action is the verdict of the decision function for one candidate.
type Action int

const (
	ActionSkip Action = iota
	ActionStop
	ActionTerminate
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionStop:
		return "stop"
	case ActionTerminate:
		return "terminate"
	default:
		return "skip"
	}
}

// Decide maps a candidate to the action the pass may take against it:
//
//   - tagged CanNuke=true: terminate. The owner explicitly opted in.
//   - untagged but stoppable: stop. Never terminate what nobody opted in.
//   - untagged and not stoppable (NAT gateways): skip entirely.
//
// The asymmetry is a deliberate safety bound limiting destructive action to
// explicitly opted-in resources.
func Decide(c Candidate) Action {
	if strings.EqualFold(c.Tags[NukeTag], "true") {
		return ActionTerminate
	}
	if c.Kind.Stoppable() {
		return ActionStop
	}
	return ActionSkip
}
