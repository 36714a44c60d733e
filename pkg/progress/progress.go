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

// Package progress renders a busy indicator while a long request is running.
package progress

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/exoframe/exoframe-cli/pkg/defaults"
)

// Indicator is started once and stopped once. Stop must be safe to call
// more than once and before Start.
type Indicator interface {
	Start(ctx context.Context)
	Stop()
}

// Noop is an Indicator that renders nothing.
type Noop struct{}

// Start implements Indicator.
func (Noop) Start(context.Context) {}

// Stop implements Indicator.
func (Noop) Stop() {}

// Spinner is an Indicator rendered by a bubbletea program.
type Spinner struct {
	label string
	out   io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewSpinner returns a spinner writing frames to out.
func NewSpinner(out io.Writer, label string) *Spinner {
	return &Spinner{label: label, out: out}
}

// Start launches the spinner in the background.
func (s *Spinner) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program != nil {
		return
	}

	s.program = tea.NewProgram(newSpinnerModel(s.label),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(s.out),
		tea.WithoutSignalHandler(),
	)
	s.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		if _, err := p.Run(); err != nil {
			slog.Debug("spinner stopped", "error", err)
		}
	}(s.program, s.done)
}

// Stop halts the spinner and waits for its final frame to be cleared.
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program = nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	go p.Send(stopMsg{})
	select {
	case <-done:
	case <-time.After(defaults.IndicatorStopTimeout):
		slog.Warn("timed out waiting for spinner to stop")
		p.Kill()
	}
}

// stopMsg clears the spinner line before the program exits.
type stopMsg struct{}

type spinnerModel struct {
	label    string
	spinner  spinner.Model
	quitting bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: spinner.Dot.Frames,
		FPS:    defaults.SpinnerInterval,
	}
	return spinnerModel{label: label, spinner: s}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	if m.label == "" {
		return m.spinner.View()
	}
	return m.spinner.View() + " " + m.label
}
