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
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/exoframe/exoframe-cli/pkg/progress"
)

// session tracks what a single build run changed locally so it can be undone.
type session struct {
	dockerfile string
	created    bool
	indicator  progress.Indicator
	errOut     io.Writer
	once       sync.Once
}

func newSession(dockerfile string, indicator progress.Indicator, errOut io.Writer) *session {
	if indicator == nil {
		indicator = progress.Noop{}
	}
	return &session{dockerfile: dockerfile, indicator: indicator, errOut: errOut}
}

// writeDockerfile writes content unless a Dockerfile already exists. Only a
// file written here is removed by cleanup.
func (s *session) writeDockerfile(content string) error {
	f, err := os.OpenFile(s.dockerfile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			slog.Debug("keeping existing dockerfile", "path", s.dockerfile)
			return nil
		}
		return err
	}
	s.created = true

	if _, err := io.WriteString(f, content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// cleanup stops the indicator and removes the synthesized Dockerfile. It is
// safe to call more than once; only the first call has an effect.
func (s *session) cleanup() {
	s.once.Do(func() {
		s.indicator.Stop()
		if !s.created {
			return
		}
		if err := os.Remove(s.dockerfile); err != nil {
			slog.Error("failed to delete dockerfile", "path", s.dockerfile, "error", err)
			fmt.Fprintln(s.errOut, "error deleting dockerfile:", err)
			return
		}
		slog.Debug("deleted dockerfile", "path", s.dockerfile)
	})
}
