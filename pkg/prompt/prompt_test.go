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

package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeRunes(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestInputModelSubmitTyped(t *testing.T) {
	var m tea.Model = newInputModel(Question{Message: "Image tag:", Default: "myapp"})
	m = typeRunes(m, "custom")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	res := m.(inputModel)
	assert.True(t, res.submitted)
	assert.Equal(t, "custom", res.answer())
	assert.NotNil(t, cmd)
	assert.Contains(t, res.View(), "Image tag: custom")
}

func TestInputModelEmptyAnswerUsesDefault(t *testing.T) {
	var m tea.Model = newInputModel(Question{Message: "Image tag:", Default: "myapp"})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "myapp", m.(inputModel).answer())
}

func TestInputModelAbort(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		var m tea.Model = newInputModel(Question{Message: "Custom labels:"})
		m, _ = m.Update(tea.KeyMsg{Type: key})

		res := m.(inputModel)
		assert.True(t, res.aborted)
		assert.False(t, res.submitted)
		assert.Empty(t, res.View())
	}
}
