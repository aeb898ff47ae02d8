// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package costs

// Level classifies month-to-date spend against the configured thresholds.
type Level int

const (
	LevelOK Level = iota
	LevelAlert
	LevelCritical
)

// String returns a short name for the level.
func (l Level) String() string {
	switch l {
	case LevelAlert:
		return "alert"
	case LevelCritical:
		return "critical"
	default:
		return "ok"
	}
}

// Policy is the immutable configuration one cost check runs under. It is
// built once per invocation; job logic never reads the environment directly.
type Policy struct {
	AlertThreshold    float64
	CriticalThreshold float64
	Topic             string
	Server            string
	Token             string
	AutoNuke          bool
	DryRun            bool
	DailySummary      bool
}

// Evaluate compares the month-to-date total against the policy thresholds.
// The critical threshold wins when the two overlap.
func Evaluate(total float64, p Policy) Level {
	switch {
	case total >= p.CriticalThreshold:
		return LevelCritical
	case total >= p.AlertThreshold:
		return LevelAlert
	default:
		return LevelOK
	}
}
