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

// Package deployment turns the server's container list into deployment rows
// and renders them grouped by project.
package deployment

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/docker/docker/api/types"

	"github.com/exoframe/exoframe-cli/pkg/defaults"
)

// NotSet is shown for missing values.
const NotSet = "Not set"

const (
	routePrefix = "Host:"
	tableIndent = "   "
	tablePad    = 7
)

// Deployment is a single running deployment as shown by the list command.
type Deployment struct {
	ID       string `json:"id" yaml:"id"`
	URL      string `json:"url" yaml:"url"`
	Hostname string `json:"hostname" yaml:"hostname"`
	Status   string `json:"status" yaml:"status"`
	Project  string `json:"project,omitempty" yaml:"project,omitempty"`
}

// FromContainer extracts the deployment row from a container inspect record.
func FromContainer(c types.ContainerJSON) Deployment {
	d := Deployment{ID: NotSet, URL: NotSet, Hostname: NotSet, Status: NotSet}

	if c.ContainerJSONBase != nil {
		if name := strings.TrimPrefix(c.Name, "/"); name != "" {
			d.ID = name
		}
		if c.State != nil && c.State.Status != "" {
			d.Status = c.State.Status
		}
	}

	if c.Config != nil {
		if rule := strings.TrimPrefix(c.Config.Labels[defaults.RouteLabel], routePrefix); rule != "" {
			d.URL = rule
		}
		d.Project = c.Config.Labels[defaults.ProjectLabel]
	}

	if c.NetworkSettings != nil {
		if ep := c.NetworkSettings.Networks[defaults.NetworkName]; ep != nil && len(ep.Aliases) > 0 {
			d.Hostname = ep.Aliases[0]
		}
	}
	return d
}

// FromContainers converts containers preserving their order.
func FromContainers(cs []types.ContainerJSON) []Deployment {
	out := make([]Deployment, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromContainer(c))
	}
	return out
}

// Group is the set of deployments sharing a project label.
type Group struct {
	Project     string
	Deployments []Deployment
}

// GroupByProject splits ds into projects with more than one deployment, in
// order of first appearance, and the remaining deployments.
func GroupByProject(ds []Deployment) ([]Group, []Deployment) {
	var order []string
	byProject := map[string][]Deployment{}
	for _, d := range ds {
		if d.Project == "" {
			continue
		}
		if _, ok := byProject[d.Project]; !ok {
			order = append(order, d.Project)
		}
		byProject[d.Project] = append(byProject[d.Project], d)
	}

	var groups []Group
	grouped := map[string]bool{}
	for _, p := range order {
		if len(byProject[p]) > 1 {
			groups = append(groups, Group{Project: p, Deployments: byProject[p]})
			grouped[p] = true
		}
	}

	var other []Deployment
	for _, d := range ds {
		if d.Project == "" || !grouped[d.Project] {
			other = append(other, d)
		}
	}
	return groups, other
}

// WriteTable writes ds as an aligned ID/URL/Hostname/Status table.
func WriteTable(w io.Writer, ds []Deployment) error {
	tw := tabwriter.NewWriter(w, 0, 0, tablePad, ' ', 0)
	fmt.Fprintln(tw, tableIndent+"ID\tURL\tHostname\tStatus")
	for _, d := range ds {
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\n", tableIndent, d.ID, d.URL, d.Hostname, d.Status)
	}
	return tw.Flush()
}

// Report is the result of listing deployments on an endpoint.
type Report struct {
	Endpoint    string       `json:"endpoint" yaml:"endpoint"`
	Deployments []Deployment `json:"deployments" yaml:"deployments"`
}

// NewReport builds a report from the server's container list.
func NewReport(endpoint string, cs []types.ContainerJSON) *Report {
	return &Report{Endpoint: endpoint, Deployments: FromContainers(cs)}
}

// RenderTable writes the human readable listing, grouping deployments by project.
func (r *Report) RenderTable(w io.Writer) error {
	if len(r.Deployments) == 0 {
		_, err := fmt.Fprintf(w, "No deployments found on %s!\n", r.Endpoint)
		return err
	}

	noun := "deployments"
	if len(r.Deployments) == 1 {
		noun = "deployment"
	}
	fmt.Fprintf(w, "%d %s found on %s:\n\n", len(r.Deployments), noun, r.Endpoint)

	groups, other := GroupByProject(r.Deployments)
	for _, g := range groups {
		fmt.Fprintf(w, "Deployments for %s:\n\n", g.Project)
		if err := WriteTable(w, g.Deployments); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(other) > 0 {
		fmt.Fprint(w, "Other deployments:\n\n")
		if err := WriteTable(w, other); err != nil {
			return err
		}
	}
	return nil
}
