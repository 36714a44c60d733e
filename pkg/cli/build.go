// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/exoframe/exoframe-cli/pkg/build"
	"github.com/exoframe/exoframe-cli/pkg/client"
	"github.com/exoframe/exoframe-cli/pkg/errors"
	"github.com/exoframe/exoframe-cli/pkg/progress"
	"github.com/exoframe/exoframe-cli/pkg/prompt"
	"github.com/exoframe/exoframe-cli/pkg/template"
)

const spinnerLabel = "Uploading and building..."

// buildCmdOptions holds parsed options for the build command.
type buildCmdOptions struct {
	workdir        string
	tag            string
	nonInteractive bool
	verbose        bool
}

// parseBuildCmdOptions parses and validates command options.
func parseBuildCmdOptions(cmd *cli.Command) (*buildCmdOptions, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to determine working directory", err)
	}
	opts := &buildCmdOptions{
		workdir:        wd,
		tag:            cmd.String("tag"),
		nonInteractive: cmd.Bool("noninteractive"),
		verbose:        cmd.Bool("verbose"),
	}
	if opts.tag != "" {
		if err := build.ValidateTag(opts.tag); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build current folder using exoframe server",
		Description: `Detect the project template, archive the current folder and upload it
to the configured exoframe server, which builds it into a Docker image.

Files matching the template ignore patterns (e.g. node_modules, *.log) are
not uploaded. When the folder has no Dockerfile, the template Dockerfile is
written for the duration of the build and removed afterwards.

In interactive mode the image tag and custom labels are asked for:

  Custom labels (comma separated): env=prod, team=web`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "image tag (default: current folder name)",
			},
			&cli.BoolFlag{
				Name:    "noninteractive",
				Aliases: []string{"ni"},
				Usage:   "do not prompt for tag and labels",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print the build log as it is received",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseBuildCmdOptions(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			resolver, err := template.NewResolver()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, "failed to load templates", err)
			}

			root := cmd.Root()
			interactive := !opts.nonInteractive
			if interactive && !isTerminal(root.Reader) {
				slog.Warn("stdin is not a terminal, running non-interactively")
				interactive = false
			}

			var indicator progress.Indicator = progress.Noop{}
			if isTerminal(root.ErrWriter) {
				indicator = progress.NewSpinner(root.ErrWriter, spinnerLabel)
			}

			runner := &build.Runner{
				Config:    cfg,
				Resolver:  resolver,
				Uploader:  client.New(cfg.Endpoint, cfg.Token, client.WithUserAgent(userAgent())),
				Prompter:  prompt.NewTerminal(root.Reader, root.Writer),
				Indicator: indicator,
				Out:       root.Writer,
				ErrOut:    root.ErrWriter,
			}

			res, err := runner.Run(ctx, build.Options{
				Workdir:     opts.workdir,
				Tag:         opts.tag,
				Interactive: interactive,
				Verbose:     opts.verbose,
			})
			if err != nil {
				slog.Debug("build failed", "error", err, "code", errors.CodeOf(err))
				reportBuildError(root.ErrWriter, err)
				return reportedError{err}
			}

			slog.Info("build completed",
				"template", template.DisplayName(res.Template),
				"tag", res.Tag,
				"labels", len(res.Labels))
			return nil
		},
	}
}
