// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package nuke implements the resource cleanup pass run when spend breaches
// the critical threshold: enumerate candidate resources, decide stop vs
// terminate vs skip per candidate, and apply the action. Termination is
// gated on an explicit CanNuke=true tag; dry-run gates every mutating call.
package nuke
