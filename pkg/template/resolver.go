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
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/exoframe/exoframe-cli/pkg/defaults"
	cerrors "github.com/exoframe/exoframe-cli/pkg/errors"
)

//go:embed data/*.yaml
var dataFS embed.FS

// dockerTemplate is reported when the project ships its own Dockerfile.
const dockerTemplate = "docker"

// defaultDockerIgnores apply to projects that bring their own Dockerfile.
var defaultDockerIgnores = []string{".git", ".git/**", "node_modules/**", "*.log"}

// Resolver detects templates for working directories.
type Resolver struct {
	definitions []Definition
}

// NewResolver returns a Resolver loaded with the embedded templates.
func NewResolver() (*Resolver, error) {
	return NewResolverFromFS(dataFS, "data")
}

// NewResolverFromFS loads every *.yaml template definition in dir of fsys.
func NewResolverFromFS(fsys fs.FS, dir string) (*Resolver, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	defs := make([]Definition, 0, len(files))
	for _, f := range files {
		b, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", f, err)
		}
		var def Definition
		if err := yaml.Unmarshal(b, &def); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", f, err)
		}
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("invalid template %s: %w", f, err)
		}
		defs = append(defs, def)
	}

	return NewResolverWithDefinitions(defs...), nil
}

// NewResolverWithDefinitions returns a Resolver using the given definitions ordered by priority.
func NewResolverWithDefinitions(defs ...Definition) *Resolver {
	sorted := slices.Clone(defs)
	slices.SortStableFunc(sorted, func(a, b Definition) int {
		return a.Priority - b.Priority
	})
	return &Resolver{definitions: sorted}
}

// Resolve returns the descriptor for workdir, or ErrNoTemplate.
func (r *Resolver) Resolve(workdir string) (*Descriptor, error) {
	basename := strings.TrimSpace(filepath.Base(workdir))

	dockerfile := filepath.Join(workdir, defaults.DockerfileName)
	b, err := os.ReadFile(dockerfile)
	switch {
	case err == nil:
		slog.Debug("using existing dockerfile", "path", dockerfile)
		return &Descriptor{
			Name:       dockerTemplate,
			Dockerfile: string(b),
			Ignores:    slices.Clone(defaultDockerIgnores),
			Labels:     map[string]string{"exoframe.type": dockerTemplate},
		}, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, cerrors.Wrap(cerrors.ErrCodeInternal, "failed to read existing Dockerfile", err)
	}

	for i := range r.definitions {
		def := &r.definitions[i]
		if def.matches(workdir) {
			slog.Debug("template detected", "template", def.Name, "workdir", workdir)
			return def.descriptor(basename), nil
		}
	}

	return nil, ErrNoTemplate
}

// DisplayName returns the human readable template name, e.g. "Node".
func DisplayName(name string) string {
	return cases.Title(language.English).String(name)
}

func (def *Definition) matches(workdir string) bool {
	for _, m := range def.Markers {
		if _, err := os.Stat(filepath.Join(workdir, m)); err == nil {
			return true
		}
	}
	return false
}

func (def *Definition) validate() error {
	if def.Name == "" {
		return errors.New("name is required")
	}
	if len(def.Markers) == 0 {
		return fmt.Errorf("template %s has no markers", def.Name)
	}
	for _, p := range def.Prompts {
		if p.Label == "" || p.Message == "" {
			return fmt.Errorf("template %s has a prompt without label or message", def.Name)
		}
	}
	return nil
}
