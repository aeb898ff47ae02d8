// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/cloudchore/cloudchore/internal/nuke"
)

type failingActuator struct {
	err error
}

func (f *failingActuator) Stop(_ context.Context, _ nuke.Candidate) error      { return f.err }
func (f *failingActuator) Terminate(_ context.Context, _ nuke.Candidate) error { return f.err }

func newNukeCmd(topic string) *cli.Command {
	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "topic", Value: topic},
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
	}
	cmd.Metadata = make(map[string]interface{})
	return cmd
}

func TestRunNukeDryRun(t *testing.T) {
	actuator := &fakeCandidateActuator{}
	pass := &nuke.Pass{
		Sources: []nuke.Source{&fakeCandidateSource{candidates: []nuke.Candidate{
			{ID: "i-1", Kind: nuke.KindEC2Instance, State: "running"},
		}}},
		Actuators: map[nuke.Kind]nuke.Actuator{nuke.KindEC2Instance: actuator},
		DryRun:    true,
	}

	notifier := &fakeNotifier{}
	out := &bytes.Buffer{}
	cmd := newNukeCmd("aws-cost-alerts")

	require.NoError(t, runNuke(context.Background(), cmd, pass, notifier, out))

	assert.Empty(t, actuator.stopped)
	assert.Contains(t, out.String(), "i-1")
	assert.Contains(t, out.String(), "dry run")

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Nuke DRY RUN", notifier.sent[0].Title)
}

func TestRunNukeExecuted(t *testing.T) {
	actuator := &fakeCandidateActuator{}
	pass := &nuke.Pass{
		Sources: []nuke.Source{&fakeCandidateSource{candidates: []nuke.Candidate{
			{ID: "i-1", Kind: nuke.KindEC2Instance, State: "running"},
			{ID: "i-2", Kind: nuke.KindEC2Instance, State: "running", Tags: map[string]string{"CanNuke": "true"}},
		}}},
		Actuators: map[nuke.Kind]nuke.Actuator{nuke.KindEC2Instance: actuator},
	}

	notifier := &fakeNotifier{}
	cmd := newNukeCmd("aws-cost-alerts")

	require.NoError(t, runNuke(context.Background(), cmd, pass, notifier, &bytes.Buffer{}))

	assert.Equal(t, []string{"i-1"}, actuator.stopped)
	assert.Equal(t, []string{"i-2"}, actuator.terminated)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Resource Nuke Complete", notifier.sent[0].Title)
}

func TestRunNukeNoTopicNoNotification(t *testing.T) {
	pass := &nuke.Pass{DryRun: true}
	notifier := &fakeNotifier{}

	require.NoError(t, runNuke(context.Background(), newNukeCmd(""), pass, notifier, &bytes.Buffer{}))
	assert.Empty(t, notifier.sent)
}

func TestRunNukePartialFailure(t *testing.T) {
	pass := &nuke.Pass{
		Sources: []nuke.Source{&fakeCandidateSource{candidates: []nuke.Candidate{
			{ID: "i-1", Kind: nuke.KindEC2Instance, State: "running"},
		}}},
		Actuators: map[nuke.Kind]nuke.Actuator{
			nuke.KindEC2Instance: &failingActuator{err: errors.New("api denied")},
		},
	}

	err := runNuke(context.Background(), newNukeCmd(""), pass, &fakeNotifier{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failures")
}
