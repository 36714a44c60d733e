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

	"github.com/urfave/cli/v3"

	"github.com/exoframe/exoframe-cli/pkg/client"
	"github.com/exoframe/exoframe-cli/pkg/deployment"
	"github.com/exoframe/exoframe-cli/pkg/errors"
	"github.com/exoframe/exoframe-cli/pkg/serializer"
)

// listCmdOptions holds parsed options for the list command.
type listCmdOptions struct {
	format serializer.Format
	output string
}

// parseListCmdOptions parses and validates command options.
func parseListCmdOptions(cmd *cli.Command) (*listCmdOptions, error) {
	format, err := serializer.ParseFormat(cmd.String("format"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid --format", err)
	}
	return &listCmdOptions{
		format: format,
		output: cmd.String("output"),
	}, nil
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List deployments running on exoframe server",
		Description: `List the deployments running on the configured exoframe server.

Deployments sharing a project (exoframe.project label) are grouped together
in the table output. JSON and YAML output contain one record per deployment.`,
		Flags: []cli.Flag{
			formatFlag,
			outputFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseListCmdOptions(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			c := client.New(cfg.Endpoint, cfg.Token, client.WithUserAgent(userAgent()))
			containers, err := c.ListDeployments(ctx)
			if err != nil {
				return err
			}
			report := deployment.NewReport(cfg.Endpoint, containers)
			slog.Debug("deployments listed", "endpoint", cfg.Endpoint, "count", len(report.Deployments))

			ser := serializer.NewWriter(opts.format, cmd.Root().Writer)
			if opts.output != "" {
				ser = serializer.NewFileWriterOrStdout(opts.format, opts.output)
			}
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			return ser.Serialize(ctx, report)
		},
	}
}
