// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/cloudchore/cloudchore/internal/costs"
	"github.com/cloudchore/cloudchore/internal/notify"
	"github.com/cloudchore/cloudchore/internal/nuke"
)

// fakeFetcher serves a canned snapshot.
type fakeFetcher struct {
	snap costs.Snapshot
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context) (costs.Snapshot, error) {
	return f.snap, f.err
}

// fakeNotifier records every message it was asked to deliver.
type fakeNotifier struct {
	sent []notify.Message
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, msg notify.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeNotifier) titles() []string {
	titles := make([]string, len(f.sent))
	for i, msg := range f.sent {
		titles[i] = msg.Title
	}
	return titles
}

// fakeCandidateSource and fakeCandidateActuator stand in for the AWS side of
// a nuke pass.
type fakeCandidateSource struct {
	candidates []nuke.Candidate
	listCalls  int
}

func (f *fakeCandidateSource) Name() string { return "fake" }

func (f *fakeCandidateSource) List(_ context.Context) ([]nuke.Candidate, error) {
	f.listCalls++
	return f.candidates, nil
}

type fakeCandidateActuator struct {
	stopped    []string
	terminated []string
}

func (f *fakeCandidateActuator) Stop(_ context.Context, c nuke.Candidate) error {
	f.stopped = append(f.stopped, c.ID)
	return nil
}

func (f *fakeCandidateActuator) Terminate(_ context.Context, c nuke.Candidate) error {
	f.terminated = append(f.terminated, c.ID)
	return nil
}

// checkFixture bundles a ready-to-run check invocation.
type checkFixture struct {
	cmd      *cli.Command
	deps     checkDeps
	notifier *fakeNotifier
	source   *fakeCandidateSource
	actuator *fakeCandidateActuator
	out      *bytes.Buffer
}

type checkOpts struct {
	total        float64
	fetchErr     error
	alert        float64
	critical     float64
	autoNuke     bool
	dryRun       bool
	dailySummary bool
	event        string
	candidates   []nuke.Candidate
	notifyErr    error
}

func newCheckFixture(opts checkOpts) *checkFixture {
	if opts.alert == 0 {
		opts.alert = 10
	}
	if opts.critical == 0 {
		opts.critical = 50
	}

	cmd := &cli.Command{
		Flags: []cli.Flag{
			&cli.FloatFlag{Name: "alert-threshold", Value: opts.alert},
			&cli.FloatFlag{Name: "critical-threshold", Value: opts.critical},
			&cli.StringFlag{Name: "topic", Value: "aws-cost-alerts"},
			&cli.StringFlag{Name: "server", Value: notify.DefaultServer},
			&cli.StringFlag{Name: "token"},
			&cli.BoolFlag{Name: "auto-nuke", Value: opts.autoNuke},
			&cli.BoolFlag{Name: "dry-run", Value: opts.dryRun},
			&cli.BoolFlag{Name: "daily-summary", Value: opts.dailySummary},
			&cli.StringFlag{Name: "event", Value: opts.event},
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
	}
	cmd.Metadata = make(map[string]interface{})

	notifier := &fakeNotifier{err: opts.notifyErr}
	source := &fakeCandidateSource{candidates: opts.candidates}
	actuator := &fakeCandidateActuator{}
	out := &bytes.Buffer{}

	return &checkFixture{
		cmd:      cmd,
		notifier: notifier,
		source:   source,
		actuator: actuator,
		out:      out,
		deps: checkDeps{
			fetcher: &fakeFetcher{
				snap: costs.Snapshot{
					Total:    opts.total,
					Currency: "USD",
					Period:   "2026-08-01 to 2026-08-15",
					Services: []costs.ServiceCost{
						{Service: "Amazon EC2", Amount: opts.total},
					},
				},
				err: opts.fetchErr,
			},
			notifier: notifier,
			newPass: func(dryRun bool) *nuke.Pass {
				return &nuke.Pass{
					Sources: []nuke.Source{source},
					Actuators: map[nuke.Kind]nuke.Actuator{
						nuke.KindEC2Instance: actuator,
						nuke.KindRDSInstance: actuator,
					},
					DryRun: dryRun,
				}
			},
			out: out,
		},
	}
}

func TestRunCheckUnderThreshold(t *testing.T) {
	f := newCheckFixture(checkOpts{total: 5})

	require.NoError(t, runCheck(context.Background(), f.cmd, f.deps))

	// No notification of any kind under the alert threshold.
	assert.Empty(t, f.notifier.sent)
	assert.Contains(t, f.out.String(), "Amazon EC2")
}

func TestRunCheckDailySummary(t *testing.T) {
	f := newCheckFixture(checkOpts{total: 5, dailySummary: true})

	require.NoError(t, runCheck(context.Background(), f.cmd, f.deps))

	require.Len(t, f.notifier.sent, 1)
	assert.Contains(t, f.notifier.sent[0].Title, "AWS Cost Summary")
	assert.Equal(t, "low", f.notifier.sent[0].Priority)
}

func TestRunCheckAlertLevel(t *testing.T) {
	f := newCheckFixture(checkOpts{total: 25})

	require.NoError(t, runCheck(context.Background(), f.cmd, f.deps))

	// Exactly one alert, no nuking.
	require.Len(t, f.notifier.sent, 1)
	assert.Contains(t, f.notifier.sent[0].Title, "AWS Cost Alert")
	assert.Empty(t, f.actuator.stopped)
	assert.Empty(t, f.actuator.terminated)
}

func TestRunCheckCriticalWithoutAutoNuke(t *testing.T) {
	f := newCheckFixture(checkOpts{
		total: 75,
		candidates: []nuke.Candidate{
			{ID: "i-1", Kind: nuke.KindEC2Instance, State: "running"},
		},
	})

	require.NoError(t, runCheck(context.Background(), f.cmd, f.deps))

	titles := f.notifier.titles()
	require.Len(t, titles, 2)
	assert.Contains(t, titles[0], "CRITICAL")
	assert.Contains(t, titles[1], "Nuke Skipped")

	// Nothing was touched.
	assert.Empty(t, f.actuator.stopped)
	assert.Empty(t, f.actuator.terminated)

	// The critical body carries the candidate inventory.
	assert.Contains(t, f.notifier.sent[0].Body, "EC2 instance")
}

func TestRunCheckCriticalDryRunNuke(t *testing.T) {
	f := newCheckFixture(checkOpts{
		total:    75,
		autoNuke: true,
		dryRun:   true,
		candidates: []nuke.Candidate{
			{ID: "i-1", Kind: nuke.KindEC2Instance, State: "running"},
			{ID: "db-1", Kind: nuke.KindRDSInstance, State: "available", Tags: map[string]string{"CanNuke": "true"}},
		},
	})

	require.NoError(t, runCheck(context.Background(), f.cmd, f.deps))

	titles := f.notifier.titles()
	require.Len(t, titles, 2)
	assert.Contains(t, titles[0], "CRITICAL")
	assert.Contains(t, titles[1], "DRY RUN")

	// Dry run: planned actions reported, zero mutations.
	assert.Contains(t, f.notifier.sent[1].Body, "Would stop")
	assert.Contains(t, f.notifier.sent[1].Body, "Would terminate")
	assert.Empty(t, f.actuator.stopped)
	assert.Empty(t, f.actuator.terminated)
}

func TestRunCheckCriticalExecutedNuke(t *testing.T) {
	f := newCheckFixture(checkOpts{
		total:    75,
		autoNuke: true,
		dryRun:   false,
		candidates: []nuke.Candidate{
			{ID: "i-1", Kind: nuke.KindEC2Instance, State: "running"},
			{ID: "i-2", Kind: nuke.KindEC2Instance, State: "running", Tags: map[string]string{"CanNuke": "true"}},
		},
	})

	require.NoError(t, runCheck(context.Background(), f.cmd, f.deps))

	titles := f.notifier.titles()
	require.Len(t, titles, 2)
	assert.Contains(t, titles[1], "Nuke Complete")

	// The untagged instance was stopped, the tagged one terminated.
	assert.Equal(t, []string{"i-1"}, f.actuator.stopped)
	assert.Equal(t, []string{"i-2"}, f.actuator.terminated)

	// One describe pass total: the inventory in the critical message is
	// the exact set the pass acted on.
	assert.Equal(t, 1, f.source.listCalls)
}

func TestRunCheckUpstreamFailure(t *testing.T) {
	f := newCheckFixture(checkOpts{fetchErr: errors.New("throttled")})

	err := runCheck(context.Background(), f.cmd, f.deps)
	require.Error(t, err)

	// A failed measurement never notifies and never nukes.
	assert.Empty(t, f.notifier.sent)
	assert.Empty(t, f.actuator.stopped)
}

func TestRunCheckNotifierFailureTolerated(t *testing.T) {
	f := newCheckFixture(checkOpts{total: 25, notifyErr: errors.New("ntfy down")})

	// A dead messenger does not fail the check.
	require.NoError(t, runCheck(context.Background(), f.cmd, f.deps))
}

func TestRunCheckThresholdOrdering(t *testing.T) {
	f := newCheckFixture(checkOpts{total: 5, alert: 50, critical: 10})

	err := runCheck(context.Background(), f.cmd, f.deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "critical threshold")
}

func TestRunCheckEventFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{"budgetName": "monthly-cap", "accountId": "123456789012"}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	f := newCheckFixture(checkOpts{total: 5, event: path})
	require.NoError(t, runCheck(context.Background(), f.cmd, f.deps))
}

func TestRunCheckEventFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	f := newCheckFixture(checkOpts{total: 5, event: path})
	err := runCheck(context.Background(), f.cmd, f.deps)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid budget event"))

	// Fetch never ran its consequences: no notifications.
	assert.Empty(t, f.notifier.sent)
}
