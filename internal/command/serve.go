// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cloudchore/cloudchore/internal/aws"
	"github.com/cloudchore/cloudchore/internal/config"
	"github.com/cloudchore/cloudchore/internal/log"
	"github.com/cloudchore/cloudchore/internal/meta"
	"github.com/cloudchore/cloudchore/internal/resize"
	"github.com/cloudchore/cloudchore/internal/server"
	"github.com/cloudchore/cloudchore/internal/storage"
)

// serveCommandAction is the action handler for the "serve" subcommand. It
// runs the resize HTTP service until the listener dies.
func serveCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "serve"

	resizedBucket := cmd.String("resized-bucket")
	if resizedBucket == "" {
		return fmt.Errorf("a resized bucket is required")
	}
	uploadBucket := cmd.String("upload-bucket")
	if uploadBucket == "" {
		uploadBucket = resizedBucket
	}

	cfg, err := aws.LoadAWSConfig(ctx,
		aws.WithProfile(cmd.String("profile")),
		aws.WithRegion(cmd.String("region")),
	)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	s3Client := aws.NewS3(cfg)

	s := &server.Server{
		Uploads: storage.NewS3Store(s3Client, uploadBucket),
		Resized: storage.NewS3Store(s3Client, resizedBucket),
		Defaults: resize.Options{
			DefaultWidth:  cmd.Int("width"),
			DefaultHeight: cmd.Int("height"),
		},
	}

	return server.Run(s, cmd.String("addr"))
}

// serveCommandBuilder constructs the "serve" subcommand.
func serveCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "run the image resize HTTP service",
		UsageText: "cloudchore serve [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			NameSpacedValueChainFlagFromConfigFile("serve", meta.Config.Source,
				&cli.StringFlag{
					Name:    "addr",
					Aliases: []string{"a"},
					Usage:   "listen address",
					Sources: cli.NewValueSourceChain(
						cli.EnvVar("CLOUDCHORE_ADDR"),
					),
					Value: ":8080",
				}),
			NewProfileFlag("serve", meta.Config.Source),
			NewRegionFlag("serve", meta.Config.Source),
			NameSpacedValueChainFlagFromConfigFile("serve", meta.Config.Source,
				&cli.StringFlag{
					Name:  "upload-bucket",
					Usage: "bucket source objects are fetched from",
					Sources: cli.NewValueSourceChain(
						cli.EnvVar("UPLOAD_BUCKET"),
					),
				}),
			NameSpacedValueChainFlagFromConfigFile("serve", meta.Config.Source,
				&cli.StringFlag{
					Name:  "resized-bucket",
					Usage: "bucket resized results are written to",
					Sources: cli.NewValueSourceChain(
						cli.EnvVar("RESIZED_BUCKET"),
					),
				}),
			NameSpacedValueChainFlagFromConfigFile("serve", meta.Config.Source,
				&cli.IntFlag{
					Name:  "width",
					Usage: "bounding width when a request gives no dimensions",
					Sources: cli.NewValueSourceChain(
						cli.EnvVar("RESIZED_WIDTH"),
					),
					Value: 800,
					Validator: func(value int) error {
						return FlagValidators(value, DimensionValidator)
					},
				}),
			NameSpacedValueChainFlagFromConfigFile("serve", meta.Config.Source,
				&cli.IntFlag{
					Name:  "height",
					Usage: "bounding height when a request gives no dimensions",
					Sources: cli.NewValueSourceChain(
						cli.EnvVar("RESIZED_HEIGHT"),
					),
					Value: 600,
					Validator: func(value int) error {
						return FlagValidators(value, DimensionValidator)
					},
				}),
		},
		Action: serveCommandAction,
	}
}
