// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nuke

import (
	"context"
	"fmt"

	"github.com/cloudchore/cloudchore/internal/log"
)

// Source enumerates candidates of one resource kind.
type Source interface {
	Name() string
	List(ctx context.Context) ([]Candidate, error)
}

// Actuator performs the mutating actions for candidates of one kind.
type Actuator interface {
	Stop(ctx context.Context, c Candidate) error
	Terminate(ctx context.Context, c Candidate) error
}

// Record is the outcome for one candidate.
type Record struct {
	Candidate Candidate
	Action    Action
	DryRun    bool
	Err       error
}

// String renders the record as a summary line.
func (r Record) String() string {
	verb := map[Action]string{ActionStop: "Stopped", ActionTerminate: "Terminated"}[r.Action]
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s: %s failed: %v", r.Candidate.Label(), r.Action, r.Err)
	case r.Action == ActionSkip:
		return fmt.Sprintf("Skipped %s", r.Candidate.Label())
	case r.DryRun:
		return fmt.Sprintf("Would %s %s", r.Action, r.Candidate.Label())
	default:
		return fmt.Sprintf("%s %s", verb, r.Candidate.Label())
	}
}

// Summary is the terminal report of a pass.
type Summary struct {
	Stopped        int
	Terminated     int
	Skipped        int
	Failed         int
	WouldStop      int
	WouldTerminate int
	Records        []Record
}

// PartialFailure reports whether any candidate action failed. Per-candidate
// failures never abort the pass; they surface here.
func (s Summary) PartialFailure() bool {
	return s.Failed > 0
}

// Actions returns the lines for successful (or planned) actions.
func (s Summary) Actions() []string {
	var lines []string
	for _, r := range s.Records {
		if r.Err == nil && r.Action != ActionSkip {
			lines = append(lines, r.String())
		}
	}
	return lines
}

// Failures returns the lines for failed actions.
func (s Summary) Failures() []string {
	var lines []string
	for _, r := range s.Records {
		if r.Err != nil {
			lines = append(lines, r.String())
		}
	}
	return lines
}

// String renders the count line reported at the end of a pass.
func (s Summary) String() string {
	if s.WouldStop+s.WouldTerminate > 0 {
		return fmt.Sprintf("dry run: %d would stop, %d would terminate, %d skipped, %d failed",
			s.WouldStop, s.WouldTerminate, s.Skipped, s.Failed)
	}
	return fmt.Sprintf("%d stopped, %d terminated, %d skipped, %d failed",
		s.Stopped, s.Terminated, s.Skipped, s.Failed)
}

// Pass runs enumerate/decide/act across all sources.
type Pass struct {
	Sources   []Source
	Actuators map[Kind]Actuator
	DryRun    bool
}

// Enumerate lists all candidates across sources. A source that fails to list
// is logged and skipped; the others still get their turn.
func (p *Pass) Enumerate(ctx context.Context) []Candidate {
	var all []Candidate
	for _, src := range p.Sources {
		candidates, err := src.List(ctx)
		if err != nil {
			log.Warnf("enumerate %s: %v", src.Name(), err)
			continue
		}
		all = append(all, candidates...)
	}
	return all
}

// Run executes one pass over the given candidates: decide per candidate and
// apply the action. Callers enumerate once and hand the list in, so anything
// they reported beforehand is exactly what gets acted on. Every mutating call
// is gated on DryRun. Candidates are processed strictly sequentially; a
// failure on one is recorded and the pass moves on.
func (p *Pass) Run(ctx context.Context, candidates []Candidate) Summary {
	var summary Summary

	for _, c := range candidates {
		rec := Record{Candidate: c, Action: Decide(c), DryRun: p.DryRun}

		switch rec.Action {
		case ActionSkip:
			summary.Skipped++

		case ActionStop, ActionTerminate:
			if p.DryRun {
				if rec.Action == ActionStop {
					summary.WouldStop++
				} else {
					summary.WouldTerminate++
				}
				log.Infof("dry run: would %s %s", rec.Action, c.Label())
				break
			}

			if err := p.act(ctx, rec.Action, c); err != nil {
				rec.Err = err
				summary.Failed++
				log.Errorf("%s %s: %v", rec.Action, c.Label(), err)
				break
			}
			if rec.Action == ActionStop {
				summary.Stopped++
			} else {
				summary.Terminated++
			}
			log.Infof("%s", rec.String())
		}

		summary.Records = append(summary.Records, rec)
	}

	log.Infof("nuke pass complete: %s", summary.String())
	return summary
}

// act dispatches to the kind's actuator.
func (p *Pass) act(ctx context.Context, action Action, c Candidate) error {
	actuator, ok := p.Actuators[c.Kind]
	if !ok {
		return fmt.Errorf("no actuator for kind %s", c.Kind)
	}
	if action == ActionStop {
		return actuator.Stop(ctx, c)
	}
	return actuator.Terminate(ctx, c)
}
