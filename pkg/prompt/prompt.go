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

// Package prompt asks the user for input on the terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user cancels a prompt with ctrl+c or esc.
var ErrAborted = errors.New("prompt aborted")

// Question is a single free-text prompt.
type Question struct {
	Message string
	Default string
}

// Prompter asks questions and returns the answers.
type Prompter interface {
	Input(ctx context.Context, q Question) (string, error)
}

// Terminal is a Prompter backed by a bubbletea text input.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal returns a Prompter reading keys from in and rendering to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Input renders q and blocks until the user submits. An empty answer yields q.Default.
func (t *Terminal) Input(ctx context.Context, q Question) (string, error) {
	m := newInputModel(q)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %q failed: %w", q.Message, err)
	}
	res, ok := final.(inputModel)
	if !ok {
		return "", fmt.Errorf("prompt %q returned unexpected model %T", q.Message, final)
	}
	if res.aborted {
		return "", ErrAborted
	}
	return res.answer(), nil
}

type inputModel struct {
	question  Question
	input     textinput.Model
	submitted bool
	aborted   bool
}

func newInputModel(q Question) inputModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = q.Default
	ti.Focus()
	return inputModel{question: q, input: ti}
}

func (m inputModel) answer() string {
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v
	}
	return m.question.Default
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.submitted {
		return fmt.Sprintf("? %s %s\n", m.question.Message, m.answer())
	}
	if m.aborted {
		return ""
	}
	return fmt.Sprintf("? %s %s", m.question.Message, m.input.View())
}
