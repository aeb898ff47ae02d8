// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nuke

import (
	"fmt"
	"sort"
)

// Kind identifies the class of cloud resource a candidate is.
type Kind string

const (
	KindEC2Instance Kind = "ec2-instance"
	KindNATGateway  Kind = "nat-gateway"
	KindRDSInstance Kind = "rds-instance"
)

// label is the human form used in notifications and summaries.
func (k Kind) label() string {
	switch k {
	case KindEC2Instance:
		return "EC2 instance"
	case KindNATGateway:
		return "NAT Gateway"
	case KindRDSInstance:
		return "RDS instance"
	default:
		return string(k)
	}
}

// Stoppable reports whether the kind supports a non-destructive stop. NAT
// gateways can only be deleted, never stopped.
func (k Kind) Stoppable() bool {
	return k == KindEC2Instance || k == KindRDSInstance
}

// Candidate is one cloud resource eligible for the nuke pass. Candidates are
// enumerated transiently per invocation and never owned beyond the pass.
type Candidate struct {
	ID    string
	Name  string
	Kind  Kind
	State string
	Tags  map[string]string
}

// Label renders the candidate for human-facing output.
func (c Candidate) Label() string {
	if c.Name != "" && c.Name != c.ID {
		return fmt.Sprintf("%s %s (%s)", c.Kind.label(), c.ID, c.Name)
	}
	return fmt.Sprintf("%s %s", c.Kind.label(), c.ID)
}

// Inventory summarizes candidates as per-kind counts, one line per kind,
// suitable for the critical alert body.
func Inventory(candidates []Candidate) []string {
	counts := map[Kind]int{}
	for _, c := range candidates {
		counts[c.Kind]++
	}

	kinds := make([]Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	lines := make([]string, 0, len(kinds))
	for _, k := range kinds {
		lines = append(lines, fmt.Sprintf("%ss: %d", k.label(), counts[k]))
	}
	return lines
}
