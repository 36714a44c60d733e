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
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/exoframe/exoframe-cli/pkg/config"
	"github.com/exoframe/exoframe-cli/pkg/errors"
	"github.com/exoframe/exoframe-cli/pkg/logging"
)

const (
	name            = "exoframe"
	versionDefault  = "dev"
	logLevelDefault = "warn"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Value: "table",
		Usage: "output format (supported values: table, json, yaml)",
	}
)

func init() {
	// -v is taken by build --verbose
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

// Execute runs the CLI with the process arguments and exits with the code
// matching the returned error. It is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Run(ctx, os.Args); err != nil {
		var reported reportedError
		if !stderrors.As(err, &reported) {
			printError(os.Stderr, err)
		}
		cancel()
		os.Exit(errors.ExitCode(err))
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Build and deploy projects to an exoframe server",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Reader:                in,
		Writer:                out,
		ErrWriter:             errOut,
		// errors are reported and mapped to exit codes by Execute
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "config file (default is $HOME/.exoframe/cli.config.yml)",
				Sources: cli.EnvVars("EXOFRAME_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "exoframe server URL, overrides the configured endpoint",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   logLevelDefault,
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
		},
		Before: initLogger,
		Commands: []*cli.Command{
			buildCmd(),
			listCmd(),
		},
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logLevel := cmd.String("log-level")
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
	return ctx, nil
}

// loadConfig reads the configuration and applies the --endpoint override.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithEndpoint(cmd.String("endpoint"))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("config loaded", "endpoint", cfg.Endpoint, "user", cfg.User.Username)
	return cfg, nil
}

func userAgent() string {
	return name + "-cli/" + version
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
