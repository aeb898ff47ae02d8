// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cloudchore/cloudchore/internal/aws"
	"github.com/cloudchore/cloudchore/internal/config"
	"github.com/cloudchore/cloudchore/internal/costs"
	"github.com/cloudchore/cloudchore/internal/event"
	"github.com/cloudchore/cloudchore/internal/log"
	"github.com/cloudchore/cloudchore/internal/meta"
	"github.com/cloudchore/cloudchore/internal/notify"
	"github.com/cloudchore/cloudchore/internal/nuke"
	"github.com/cloudchore/cloudchore/internal/report"
)

// topServiceCount caps the per-service breakdown in notifications.
const topServiceCount = 5

var costColumns = []report.Column{
	{Title: "SERVICE", Key: "service"},
	{Title: "AMOUNT", Key: "amount"},
}

// checkDeps carries the swappable collaborators of a check run. The command
// action wires the real AWS and ntfy clients; tests substitute fakes.
type checkDeps struct {
	fetcher  costs.Fetcher
	notifier notify.Notifier
	newPass  func(dryRun bool) *nuke.Pass
	out      io.Writer
}

// checkCommandAction is the action handler for the "check" subcommand. It
// fetches month-to-date spend, renders the breakdown, and escalates through
// notifications and (optionally) the nuke pass.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "check"

	cfg, err := aws.LoadAWSConfig(ctx,
		aws.WithProfile(cmd.String("profile")),
		aws.WithRegion(cmd.String("region")),
	)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	ec2Client := aws.NewEC2(cfg)
	rdsClient := aws.NewRDS(cfg)

	deps := checkDeps{
		fetcher:  costs.NewExplorer(aws.NewCostExplorer(cfg)),
		notifier: notify.NewNtfy(cmd.String("server"), cmd.String("topic"), cmd.String("token")),
		newPass: func(dryRun bool) *nuke.Pass {
			return nuke.NewAWSPass(ec2Client, rdsClient, dryRun)
		},
		out: os.Stdout,
	}

	return runCheck(ctx, cmd, deps)
}

// runCheck is the check flow behind the AWS wiring.
func runCheck(ctx context.Context, cmd *cli.Command, deps checkDeps) error {
	policy := costs.Policy{
		AlertThreshold:    cmd.Float("alert-threshold"),
		CriticalThreshold: cmd.Float("critical-threshold"),
		Topic:             cmd.String("topic"),
		Server:            cmd.String("server"),
		Token:             cmd.String("token"),
		AutoNuke:          cmd.Bool("auto-nuke"),
		DryRun:            cmd.Bool("dry-run"),
		DailySummary:      cmd.Bool("daily-summary"),
	}

	if err := ThresholdsValidator(policy.AlertThreshold, policy.CriticalThreshold); err != nil {
		return err
	}

	// A push event is informational only; the run measures spend itself.
	if path := cmd.String("event"); path != "" {
		budget, err := readBudgetEvent(path)
		if err != nil {
			return err
		}
		log.Infof("triggered by %s", budget)
	}

	snap, err := deps.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch costs: %w", err)
	}

	level := costs.Evaluate(snap.Total, policy)
	log.Infof("month-to-date %s: %.2f %s (alert %.2f, critical %.2f) -> %s",
		snap.Period, snap.Total, snap.Currency,
		policy.AlertThreshold, policy.CriticalThreshold, level)

	spitSnapshot(snap, cmd, deps.out)

	switch level {
	case costs.LevelCritical:
		escalateCritical(ctx, cmd, deps, policy, snap)
	case costs.LevelAlert:
		send(ctx, deps.notifier, notify.Alert(
			snap.Total, policy.AlertThreshold, snap.Period,
			snap.ForecastLine(), snap.TopServices(topServiceCount)))
	default:
		if policy.DailySummary {
			send(ctx, deps.notifier, notify.DailySummary(
				snap.Total, policy.AlertThreshold,
				snap.ForecastLine(), snap.TopServices(topServiceCount)))
		}
	}

	return nil
}

// escalateCritical sends the critical alert and runs (or explains away) the
// nuke pass. Candidates are enumerated once; the notified inventory is
// exactly the set the pass acts on.
func escalateCritical(ctx context.Context, cmd *cli.Command, deps checkDeps, policy costs.Policy, snap costs.Snapshot) {
	pass := deps.newPass(policy.DryRun)
	candidates := pass.Enumerate(ctx)

	send(ctx, deps.notifier, notify.Critical(
		snap.Total, policy.CriticalThreshold, snap.Period,
		snap.TopServices(topServiceCount), nuke.Inventory(candidates)))

	if !policy.AutoNuke {
		send(ctx, deps.notifier, notify.NukeDisabled())
		return
	}

	summary := pass.Run(ctx, candidates)
	spitNukeSummary(summary, cmd, deps.out)

	if policy.DryRun {
		send(ctx, deps.notifier, notify.NukeDryRun(summary.Actions()))
		return
	}
	send(ctx, deps.notifier, notify.NukeSummary(summary.Actions(), summary.Failures()))
}

// send delivers one notification, logging failures without aborting: a cost
// check must never die on the messenger.
func send(ctx context.Context, notifier notify.Notifier, msg notify.Message) {
	if err := notifier.Send(ctx, msg); err != nil {
		log.Errorf("notify %q: %v", msg.Title, err)
	}
}

// spitSnapshot renders the per-service breakdown per common flags.
func spitSnapshot(snap costs.Snapshot, cmd *cli.Command, w io.Writer) {
	dataset := make([]map[string]interface{}, 0, len(snap.Services))
	for _, svc := range snap.Services {
		dataset = append(dataset, map[string]interface{}{
			"service": svc.Service,
			"amount":  svc.Amount,
		})
	}

	cmd.Metadata["header"] = fmt.Sprintf("\nMonth-to-date AWS costs (%s):", snap.Period)
	footer := fmt.Sprintf("Total: %.2f %s", snap.Total, snap.Currency)
	if snap.HasForecast {
		footer += fmt.Sprintf("   Forecast: %.2f %s", snap.Forecast, snap.Currency)
	}
	cmd.Metadata["footer"] = footer

	raw, err := json.Marshal(snap)
	if err != nil {
		log.Errorf("marshal snapshot: %v", err)
	}

	report.Spit(raw, dataset, costColumns, cmd, w)
}

// readBudgetEvent loads a budget push event from a file or stdin ("-").
func readBudgetEvent(path string) (event.Budget, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return event.Budget{}, fmt.Errorf("read event: %w", err)
	}
	return event.ParseBudget(data)
}

// checkCommandBuilder constructs the "check" subcommand.
func checkCommandBuilder(meta meta.Meta) *cli.Command {
	flags := NewGlobalFlags("check")
	flags = append(flags,
		NewProfileFlag("check", meta.Config.Source),
		NewRegionFlag("check", meta.Config.Source),
		NewTopicFlag("check", meta.Config.Source),
		NewServerFlag("check", meta.Config.Source),
		NewTokenFlag(),
	)
	flags = append(flags, NewThresholdFlags("check", meta.Config.Source)...)
	flags = append(flags, NewNukeFlags("check", meta.Config.Source)...)
	flags = append(flags,
		NameSpacedValueChainFlagFromConfigFile("check", meta.Config.Source,
			&cli.BoolFlag{
				Name:  "daily-summary",
				Usage: "send a summary notification even when spend is under threshold",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("SEND_DAILY_SUMMARY"),
				),
				Value: false,
			}),
		&cli.StringFlag{
			Name:  "event",
			Usage: "budget push event JSON file to log ('-' for stdin)",
		},
	)

	return &cli.Command{
		Name:      "check",
		Usage:     "cost check: measure spend, alert, and optionally nuke",
		UsageText: "cloudchore check [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags:     flags,
		Action:    checkCommandAction,
	}
}
