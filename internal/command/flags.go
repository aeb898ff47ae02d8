// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/cloudchore/cloudchore/internal/notify"
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "substring filter to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "extra left padding between table columns",
			Value: 2,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewProfileFlag constructs the "profile" flag, optionally namespaced to a
// command and config file. params[1] is the config file.
func NewProfileFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "profile",
		Usage: "AWS shared config profile to use",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CLOUDCHORE_PROFILE"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewRegionFlag constructs the "region" flag, optionally namespaced to a
// command and config file. params[1] is the config file.
func NewRegionFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "region",
		Usage: "AWS region to use. Overrides the shared config",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CLOUDCHORE_REGION"),
		),
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewTopicFlag constructs the ntfy "topic" flag.
func NewTopicFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "topic",
		Usage: "ntfy topic notifications are published to",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTFY_TOPIC"),
		),
		Value: "aws-cost-alerts",
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewServerFlag constructs the ntfy "server" flag.
func NewServerFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "server",
		Usage: "ntfy server URL",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTFY_SERVER"),
		),
		Value: notify.DefaultServer,
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewTokenFlag constructs the ntfy "token" flag. Tokens never come from the
// config file, only the environment or the command line.
func NewTokenFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "token",
		Usage: "ntfy bearer token",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NTFY_TOKEN"),
		),
	}
}

// NewThresholdFlags constructs the alert and critical threshold flags,
// optionally namespaced to a command and config file. params[1] is the config
// file.
func NewThresholdFlags(params ...string) []cli.Flag {
	alert := &cli.FloatFlag{
		Name:  "alert-threshold",
		Usage: "month-to-date spend (USD) that triggers an alert",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ALERT_THRESHOLD"),
		),
		Value: 10,
	}
	critical := &cli.FloatFlag{
		Name:  "critical-threshold",
		Usage: "month-to-date spend (USD) that triggers a critical alert",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("CRITICAL_THRESHOLD"),
		),
		Value: 50,
	}

	if len(params) == 2 {
		alert = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], alert)
		critical = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], critical)
	}

	return []cli.Flag{alert, critical}
}

// NewNukeFlags constructs the flags governing the nuke pass, optionally
// namespaced to a command and config file. Dry run is the default; destroying
// things takes an explicit opt-out.
func NewNukeFlags(params ...string) []cli.Flag {
	autoNuke := &cli.BoolFlag{
		Name:  "auto-nuke",
		Usage: "run the resource nuke pass when spend is critical",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ENABLE_AUTO_NUKE"),
		),
		Value: false,
	}
	dryRun := &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "report what the nuke pass would do without doing it",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NUKE_DRY_RUN"),
		),
		Value: true,
	}

	if len(params) == 2 {
		autoNuke = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], autoNuke)
		dryRun = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], dryRun)
	}

	return []cli.Flag{autoNuke, dryRun}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile[T any, C any, VC cli.ValueCreator[T, C]](ns string, path string, flag *cli.FlagBase[T, C, VC]) *cli.FlagBase[T, C, VC] {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
