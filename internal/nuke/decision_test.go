// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package nuke

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		want      Action
	}{
		{
			name:      "untagged ec2 instance is stopped",
			candidate: Candidate{ID: "i-1", Kind: KindEC2Instance},
			want:      ActionStop,
		},
		{
			name:      "tagged ec2 instance is terminated",
			candidate: Candidate{ID: "i-2", Kind: KindEC2Instance, Tags: map[string]string{NukeTag: "true"}},
			want:      ActionTerminate,
		},
		{
			name:      "tag value is case insensitive",
			candidate: Candidate{ID: "i-3", Kind: KindEC2Instance, Tags: map[string]string{NukeTag: "True"}},
			want:      ActionTerminate,
		},
		{
			name:      "tag must be exactly true",
			candidate: Candidate{ID: "i-4", Kind: KindEC2Instance, Tags: map[string]string{NukeTag: "yes"}},
			want:      ActionStop,
		},
		{
			name:      "untagged rds instance is stopped",
			candidate: Candidate{ID: "db-1", Kind: KindRDSInstance},
			want:      ActionStop,
		},
		{
			name:      "tagged rds instance is terminated",
			candidate: Candidate{ID: "db-2", Kind: KindRDSInstance, Tags: map[string]string{NukeTag: "true"}},
			want:      ActionTerminate,
		},
		{
			name:      "untagged nat gateway is skipped - cannot be stopped",
			candidate: Candidate{ID: "nat-1", Kind: KindNATGateway},
			want:      ActionSkip,
		},
		{
			name:      "tagged nat gateway is terminated",
			candidate: Candidate{ID: "nat-2", Kind: KindNATGateway, Tags: map[string]string{NukeTag: "true"}},
			want:      ActionTerminate,
		},
		{
			name:      "unrelated tags do not opt in",
			candidate: Candidate{ID: "i-5", Kind: KindEC2Instance, Tags: map[string]string{"Name": "web", "Env": "prod"}},
			want:      ActionStop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.candidate))
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "skip", ActionSkip.String())
	assert.Equal(t, "stop", ActionStop.String())
	assert.Equal(t, "terminate", ActionTerminate.String())
}

func TestCandidateLabel(t *testing.T) {
	c := Candidate{ID: "i-abc", Name: "web-1", Kind: KindEC2Instance}
	assert.Equal(t, "EC2 instance i-abc (web-1)", c.Label())

	c = Candidate{ID: "nat-0f1", Kind: KindNATGateway}
	assert.Equal(t, "NAT Gateway nat-0f1", c.Label())
}

func TestInventory(t *testing.T) {
	lines := Inventory([]Candidate{
		{ID: "i-1", Kind: KindEC2Instance},
		{ID: "i-2", Kind: KindEC2Instance},
		{ID: "nat-1", Kind: KindNATGateway},
	})
	assert.Equal(t, []string{"EC2 instances: 2", "NAT Gateways: 1"}, lines)

	assert.Empty(t, Inventory(nil))
}
