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
	"github.com/cloudchore/cloudchore/internal/log"
	"github.com/cloudchore/cloudchore/internal/meta"
	"github.com/cloudchore/cloudchore/internal/notify"
	"github.com/cloudchore/cloudchore/internal/nuke"
	"github.com/cloudchore/cloudchore/internal/report"
)

var nukeColumns = []report.Column{
	{Title: "RESOURCE", Key: "resource"},
	{Title: "ACTION", Key: "action"},
	{Title: "RESULT", Key: "result"},
}

// nukeCommandAction is the action handler for the "nuke" subcommand. It runs
// one cleanup pass directly, without consulting spend. Dry run is the
// default.
func nukeCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "nuke"

	cfg, err := aws.LoadAWSConfig(ctx,
		aws.WithProfile(cmd.String("profile")),
		aws.WithRegion(cmd.String("region")),
	)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	pass := nuke.NewAWSPass(aws.NewEC2(cfg), aws.NewRDS(cfg), cmd.Bool("dry-run"))
	notifier := notify.NewNtfy(cmd.String("server"), cmd.String("topic"), cmd.String("token"))

	return runNuke(ctx, cmd, pass, notifier, os.Stdout)
}

// runNuke executes the pass, renders it, and pushes the summary when a topic
// is configured.
func runNuke(ctx context.Context, cmd *cli.Command, pass *nuke.Pass, notifier notify.Notifier, out io.Writer) error {
	summary := pass.Run(ctx, pass.Enumerate(ctx))
	spitNukeSummary(summary, cmd, out)

	if cmd.String("topic") != "" {
		if pass.DryRun {
			send(ctx, notifier, notify.NukeDryRun(summary.Actions()))
		} else {
			send(ctx, notifier, notify.NukeSummary(summary.Actions(), summary.Failures()))
		}
	}

	if summary.PartialFailure() {
		return fmt.Errorf("nuke pass finished with failures: %s", summary)
	}
	return nil
}

// spitNukeSummary renders the per-candidate records per common flags.
func spitNukeSummary(summary nuke.Summary, cmd *cli.Command, w io.Writer) {
	dataset := make([]map[string]interface{}, 0, len(summary.Records))
	for _, rec := range summary.Records {
		result := "ok"
		if rec.Err != nil {
			result = rec.Err.Error()
		} else if rec.DryRun && rec.Action != nuke.ActionSkip {
			result = "dry run"
		}
		dataset = append(dataset, map[string]interface{}{
			"resource": rec.Candidate.Label(),
			"action":   rec.Action.String(),
			"result":   result,
		})
	}

	cmd.Metadata["header"] = "\nNuke pass:"
	cmd.Metadata["footer"] = summary.String()

	raw, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("marshal summary: %v", err)
	}

	report.Spit(raw, dataset, nukeColumns, cmd, w)
}

// nukeCommandBuilder constructs the "nuke" subcommand.
func nukeCommandBuilder(meta meta.Meta) *cli.Command {
	flags := NewGlobalFlags("nuke")
	flags = append(flags,
		NewProfileFlag("nuke", meta.Config.Source),
		NewRegionFlag("nuke", meta.Config.Source),
		NewServerFlag("nuke", meta.Config.Source),
		NewTokenFlag(),
		// No default topic here: a direct nuke only notifies on request.
		NameSpacedValueChainFlagFromConfigFile("nuke", meta.Config.Source,
			&cli.StringFlag{
				Name:  "topic",
				Usage: "ntfy topic to push the pass summary to",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("NTFY_TOPIC"),
				),
			}),
		NameSpacedValueChainFlagFromConfigFile("nuke", meta.Config.Source,
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "report what the pass would do without doing it",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("NUKE_DRY_RUN"),
				),
				Value: true,
			}),
	)

	return &cli.Command{
		Name:      "nuke",
		Usage:     "stop or terminate running EC2, NAT, and RDS resources",
		UsageText: "cloudchore nuke [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags:     flags,
		Action:    nukeCommandAction,
	}
}
