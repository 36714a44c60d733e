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

package build

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/exoframe/exoframe-cli/pkg/archive"
	"github.com/exoframe/exoframe-cli/pkg/client"
	"github.com/exoframe/exoframe-cli/pkg/config"
	"github.com/exoframe/exoframe-cli/pkg/defaults"
	"github.com/exoframe/exoframe-cli/pkg/errors"
	"github.com/exoframe/exoframe-cli/pkg/progress"
	"github.com/exoframe/exoframe-cli/pkg/prompt"
	"github.com/exoframe/exoframe-cli/pkg/stream"
	"github.com/exoframe/exoframe-cli/pkg/template"
)

// Prompt messages shown in interactive mode.
const (
	TagPrompt    = "Image tag:"
	LabelsPrompt = "Custom labels (comma separated):"
)

// Resolver detects the template of a working directory.
type Resolver interface {
	Resolve(workdir string) (*template.Descriptor, error)
}

// Uploader sends the archive to the server and returns the build log.
type Uploader interface {
	Build(ctx context.Context, body io.Reader, params client.BuildParams) (io.ReadCloser, error)
}

// Options are the per-invocation settings of a build.
type Options struct {
	Workdir     string
	Tag         string
	Interactive bool
	Verbose     bool
}

// Runner executes the build flow against a single server.
type Runner struct {
	Config    *config.Config
	Resolver  Resolver
	Uploader  Uploader
	Prompter  prompt.Prompter
	Indicator progress.Indicator
	Out       io.Writer
	ErrOut    io.Writer
}

// Result describes a finished build.
type Result struct {
	Template string
	Tag      string
	Labels   map[string]string
}

var bold = color.New(color.Bold)

// Run resolves the template, uploads the archived working directory and
// renders the server response. The synthesized Dockerfile and the progress
// indicator are cleaned up exactly once on every return path.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	workdir, err := filepath.Abs(opts.Workdir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid working directory", err)
	}

	fmt.Fprintln(r.Out, bold.Sprint("Building current folder using endpoint:"), r.Config.Endpoint)

	desc, err := r.Resolver.Resolve(workdir)
	if err != nil {
		return nil, err
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("template resolved", "template", desc.Name, "workdir", workdir)

	tag, typed, labels, err := r.collect(ctx, desc, workdir, opts)
	if err != nil {
		return nil, err
	}
	// The directory name is sent as is; only tags entered by the user are checked.
	if typed {
		if err := ValidateTag(tag); err != nil {
			return nil, err
		}
	}

	builder, err := archive.NewBuilder(desc.Ignores)
	if err != nil {
		return nil, err
	}

	var indicator progress.Indicator = progress.Noop{}
	if !opts.Verbose && r.Indicator != nil {
		indicator = r.Indicator
	}
	sess := newSession(filepath.Join(workdir, defaults.DockerfileName), indicator, r.ErrOut)
	defer sess.cleanup()

	if err := sess.writeDockerfile(desc.Dockerfile); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to write Dockerfile", err,
			map[string]any{"path": sess.dockerfile})
	}

	params := client.BuildParams{Tag: tag, Labels: labels}
	slog.Info("uploading build", "tag", tag, "template", desc.Name, "endpoint", r.Config.Endpoint)

	sess.indicator.Start(ctx)
	err = r.upload(ctx, builder, workdir, params, opts.Verbose)
	sess.cleanup()
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(r.Out, bold.Sprint("Done building!"), "Your image is now available as "+tag)
	return &Result{Template: desc.Name, Tag: tag, Labels: labels}, nil
}

// collect determines the image tag and the labels sent with the build. typed
// reports whether the tag came from the user rather than the directory name.
func (r *Runner) collect(ctx context.Context, desc *template.Descriptor, workdir string, opts Options) (tag string, typed bool, labels map[string]string, err error) {
	tag, typed = opts.Tag, opts.Tag != ""
	if !typed {
		tag = DefaultTag(workdir)
	}

	var userLabels, templateLabels map[string]string
	if opts.Interactive && r.Prompter != nil {
		answer, perr := r.Prompter.Input(ctx, prompt.Question{Message: TagPrompt, Default: tag})
		if perr != nil {
			return "", false, nil, promptError(perr)
		}
		if answer != "" && answer != tag {
			tag, typed = answer, true
		}

		input, perr := r.Prompter.Input(ctx, prompt.Question{Message: LabelsPrompt})
		if perr != nil {
			return "", false, nil, promptError(perr)
		}
		userLabels = ParseLabels(input)

		if desc.Interactive != nil {
			if templateLabels, perr = desc.Interactive(ctx, r.Prompter); perr != nil {
				return "", false, nil, promptError(perr)
			}
		}
	}

	labels = MergeLabels(desc.Labels, templateLabels, userLabels,
		map[string]string{defaults.UserLabel: r.Config.User.Username})
	return tag, typed, labels, nil
}

func promptError(err error) error {
	if stderrors.Is(err, prompt.ErrAborted) || stderrors.Is(err, context.Canceled) {
		return errors.Wrap(errors.ErrCodeTimeout, "build canceled", err)
	}
	return errors.Wrap(errors.ErrCodeInternal, "failed to read input", err)
}

// upload streams the archive of workdir to the server while consuming the
// build log. Both sides run in one errgroup; archive failures take precedence
// over the transport error they cause.
func (r *Runner) upload(ctx context.Context, builder *archive.Builder, workdir string, params client.BuildParams, verbose bool) error {
	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)

	var archiveErr error
	g.Go(func() error {
		err := builder.Write(gctx, pw, workdir)
		_ = pw.CloseWithError(err)
		if err == nil || stderrors.Is(err, io.ErrClosedPipe) ||
			stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		archiveErr = err
		return err
	})

	g.Go(func() error {
		defer pr.Close()
		body, err := r.Uploader.Build(gctx, pr, params)
		if err != nil {
			return err
		}
		defer body.Close()
		return r.consume(gctx, body, verbose)
	})

	err := g.Wait()
	if archiveErr != nil {
		return archiveErr
	}
	return err
}

// consume drains the build log in arrival order. In verbose mode every
// fragment is printed; a server reported error fails the build once the log
// is fully read.
func (r *Runner) consume(ctx context.Context, body io.Reader, verbose bool) error {
	var buildErr error
	for f, err := range stream.Fragments(body) {
		if err != nil {
			if ctx.Err() != nil {
				return errors.Wrap(errors.ErrCodeTimeout, "build canceled", ctx.Err())
			}
			return errors.Wrap(errors.ErrCodeUnavailable, "build log interrupted", err)
		}
		if verbose {
			fmt.Fprintln(r.Out, f.Text())
		}
		if ferr := f.Err(); ferr != nil && buildErr == nil {
			buildErr = ferr
		}
	}
	if buildErr != nil {
		return errors.Wrap(errors.ErrCodeBuildFailed, "server reported build failure", buildErr)
	}
	return nil
}
