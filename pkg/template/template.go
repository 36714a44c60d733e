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

package template

import (
	"context"
	"maps"
	"strings"

	cerrors "github.com/exoframe/exoframe-cli/pkg/errors"
	"github.com/exoframe/exoframe-cli/pkg/prompt"
)

// Sentinel errors returned by the resolver and by Descriptor.Validate.
var (
	ErrNoTemplate      = cerrors.New(cerrors.ErrCodeNoTemplate, "could not detect template for current project")
	ErrEmptyDockerfile = cerrors.New(cerrors.ErrCodeEmptyDockerfile, "template Dockerfile is empty")
)

// basenameVar in a prompt default expands to the working directory name.
const basenameVar = "$basename"

// InteractiveFunc asks template specific questions and returns labels to add to the build.
type InteractiveFunc func(ctx context.Context, p prompt.Prompter) (map[string]string, error)

// Descriptor describes how to build a detected project. It is not modified after resolution.
type Descriptor struct {
	Name        string
	Dockerfile  string
	Ignores     []string
	Labels      map[string]string
	Interactive InteractiveFunc
}

// Validate reports ErrEmptyDockerfile when the descriptor has no Dockerfile content.
func (d *Descriptor) Validate() error {
	if d == nil {
		return ErrNoTemplate
	}
	if strings.TrimSpace(d.Dockerfile) == "" {
		return ErrEmptyDockerfile
	}
	return nil
}

// Definition is the YAML form of a template.
type Definition struct {
	Name       string            `yaml:"name"`
	Priority   int               `yaml:"priority"`
	Markers    []string          `yaml:"markers"`
	Dockerfile string            `yaml:"dockerfile"`
	Ignores    []string          `yaml:"ignores"`
	Labels     map[string]string `yaml:"labels"`
	Prompts    []PromptDef       `yaml:"prompts,omitempty"`
}

// PromptDef is a question whose answer becomes a label.
type PromptDef struct {
	Label   string `yaml:"label"`
	Message string `yaml:"message"`
	Default string `yaml:"default,omitempty"`
}

// descriptor materializes the definition for a given working directory name.
func (def *Definition) descriptor(basename string) *Descriptor {
	d := &Descriptor{
		Name:       def.Name,
		Dockerfile: def.Dockerfile,
		Ignores:    append([]string(nil), def.Ignores...),
		Labels:     make(map[string]string, len(def.Labels)),
	}
	maps.Copy(d.Labels, def.Labels)

	if len(def.Prompts) > 0 {
		prompts := append([]PromptDef(nil), def.Prompts...)
		d.Interactive = func(ctx context.Context, p prompt.Prompter) (map[string]string, error) {
			out := make(map[string]string, len(prompts))
			for _, pd := range prompts {
				dflt := pd.Default
				if dflt == basenameVar {
					dflt = basename
				}
				answer, err := p.Input(ctx, prompt.Question{Message: pd.Message, Default: dflt})
				if err != nil {
					return nil, err
				}
				if answer = strings.TrimSpace(answer); answer != "" {
					out[pd.Label] = answer
				}
			}
			return out, nil
		}
	}
	return d
}
