// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cloudchore/cloudchore/internal/config"
	"github.com/cloudchore/cloudchore/internal/log"
	"github.com/cloudchore/cloudchore/internal/meta"
	"github.com/cloudchore/cloudchore/internal/resize"
)

// resizeCommandAction is the action handler for the "resize" subcommand. It
// resizes one local image file, no AWS involved.
func resizeCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := cmd.Metadata["meta"].(meta.Meta)
	log.Debugf("Executing action for %v", meta.Args[1:])

	config.Config.Namespace = "resize"

	input := cmd.Args().First()
	if input == "" {
		return fmt.Errorf("an input image file is required")
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	result, err := resize.Resize(data, resize.Options{
		Width:         cmd.Int("width"),
		Height:        cmd.Int("height"),
		DefaultWidth:  cmd.Int("default-width"),
		DefaultHeight: cmd.Int("default-height"),
	})
	if err != nil {
		return fmt.Errorf("resize %s: %w", input, err)
	}

	out := cmd.String("out")
	if out == "" {
		// The extension has to match what was encoded, not what was
		// decoded: everything but PNG re-encodes as JPEG.
		ext := strings.TrimPrefix(result.ContentType, "image/")
		if ext == "jpeg" {
			ext = "jpg"
		}
		base := strings.TrimSuffix(input, filepath.Ext(input))
		out = fmt.Sprintf("%s-resized.%s", base, ext)
	}

	if err := os.WriteFile(out, result.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	fmt.Fprintf(os.Stdout, "%s: %dx%d %s (%d bytes)\n",
		out, result.Width, result.Height, result.ContentType, len(result.Data))

	return nil
}

// resizeCommandBuilder constructs the "resize" subcommand.
func resizeCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "resize",
		Usage:     "resize a local image file",
		UsageText: "cloudchore resize FILE [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "width",
				Aliases: []string{"w"},
				Usage:   "target width in pixels",
				Validator: func(value int) error {
					return FlagValidators(value, DimensionValidator)
				},
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "target height in pixels",
				Validator: func(value int) error {
					return FlagValidators(value, DimensionValidator)
				},
			},
			&cli.IntFlag{
				Name:  "default-width",
				Usage: "bounding width when no dimensions are given",
				Value: 800,
			},
			&cli.IntFlag{
				Name:  "default-height",
				Usage: "bounding height when no dimensions are given",
				Value: 600,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"O"},
				Usage:   "output file. Defaults to FILE-resized.<ext>",
			},
		},
		Action: resizeCommandAction,
	}
}
