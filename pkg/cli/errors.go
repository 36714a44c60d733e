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
	stderrors "errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/exoframe/exoframe-cli/pkg/errors"
	"github.com/exoframe/exoframe-cli/pkg/template"
)

var (
	alert = color.New(color.FgRed, color.Bold).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

// reportedError marks an error that was already shown to the user.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// handleError prints a friendly message for errors every command can run
// into. It returns false when err is not one of them.
func handleError(w io.Writer, err error) bool {
	switch errors.CodeOf(err) {
	case errors.ErrCodeUnauthorized:
		fmt.Fprintln(w, alert("Error: authorization expired!"), "Please, relogin and try again.")
	case errors.ErrCodeUnavailable:
		fmt.Fprintln(w, alert("Error: could not connect to the server!"), err)
	case errors.ErrCodeTimeout:
		fmt.Fprintln(w, alert("Error: operation canceled or timed out!"), err)
	default:
		return false
	}
	return true
}

// reportBuildError prints err the way the build command presents failures.
func reportBuildError(w io.Writer, err error) {
	switch {
	case stderrors.Is(err, template.ErrNoTemplate):
		fmt.Fprintln(w, alert("Error!"), "Could not detect template for current project!")
	case stderrors.Is(err, template.ErrEmptyDockerfile):
		fmt.Fprintln(w, alert("Error!"), "Template Dockerfile is empty!")
	default:
		if handleError(w, err) {
			return
		}
		fmt.Fprintln(w, bold("Error during build!"))
		fmt.Fprintln(w, err)
	}
}

// printError is the fallback for errors not reported by a command.
func printError(w io.Writer, err error) {
	if handleError(w, err) {
		return
	}
	fmt.Fprintln(w, alert("Error:"), err)
}
