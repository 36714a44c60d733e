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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exoframe/exoframe-cli/pkg/errors"
)

type harness struct {
	out    bytes.Buffer
	errOut bytes.Buffer
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd(strings.NewReader(""), &h.out, &h.errOut)
	return cmd.Run(context.Background(), append([]string{name}, args...))
}

func writeConfig(t *testing.T, endpoint string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.config.yml")
	content := fmt.Sprintf("endpoint: %s\ntoken: test-token\nuser:\n  username: admin\n", endpoint)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func projectDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "myapp")
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func buildServer(t *testing.T, response string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		if r.Header.Get("x-access-token") != "test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

const buildLog = "{\"stream\":\"step 1\\n\"}\n{\"stream\":\"step 2\\n\"}\n"

func TestBuildVerbose(t *testing.T) {
	srv, calls := buildServer(t, buildLog)
	cfg := writeConfig(t, srv.URL)
	t.Chdir(projectDir(t, map[string]string{"package.json": "{}"}))

	var h harness
	err := h.run(t, "--config", cfg, "build", "--ni", "-v")
	require.NoError(t, err)

	out := h.out.String()
	assert.Equal(t, int32(1), calls.Load())
	assert.Less(t, strings.Index(out, "step 1"), strings.Index(out, "step 2"))
	assert.Contains(t, out, "Done building! Your image is now available as myapp")
	assert.NoFileExists(t, "Dockerfile")
}

func TestBuildQuiet(t *testing.T) {
	srv, _ := buildServer(t, buildLog)
	cfg := writeConfig(t, srv.URL)
	t.Chdir(projectDir(t, map[string]string{"package.json": "{}"}))

	var h harness
	require.NoError(t, h.run(t, "--config", cfg, "build", "--noninteractive", "--tag", "custom"))

	assert.NotContains(t, h.out.String(), "step")
	assert.Contains(t, h.out.String(), "Done building! Your image is now available as custom")
}

func TestBuildNoTemplate(t *testing.T) {
	srv, calls := buildServer(t, buildLog)
	cfg := writeConfig(t, srv.URL)
	t.Chdir(projectDir(t, map[string]string{"README.md": "hi"}))

	var h harness
	err := h.run(t, "--config", cfg, "build", "--ni")
	require.Error(t, err)

	assert.Equal(t, 3, errors.ExitCode(err))
	assert.Zero(t, calls.Load())
	assert.Contains(t, h.errOut.String(), "Could not detect template for current project!")
}

func TestBuildServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"docker daemon is down"}`)
	}))
	defer srv.Close()
	cfg := writeConfig(t, srv.URL)
	t.Chdir(projectDir(t, map[string]string{"package.json": "{}"}))

	var h harness
	err := h.run(t, "--config", cfg, "build", "--ni")
	require.Error(t, err)

	assert.Equal(t, 1, errors.ExitCode(err))
	assert.Contains(t, h.errOut.String(), "Error during build!")
	assert.Contains(t, h.errOut.String(), "docker daemon is down")
	assert.NoFileExists(t, "Dockerfile")
}

func TestBuildUnauthorized(t *testing.T) {
	srv, _ := buildServer(t, buildLog)
	path := filepath.Join(t.TempDir(), "cli.config.yml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: "+srv.URL+"\ntoken: stale\n"), 0o600))
	t.Chdir(projectDir(t, map[string]string{"package.json": "{}"}))

	var h harness
	err := h.run(t, "--config", path, "build", "--ni")
	require.Error(t, err)

	assert.Equal(t, 5, errors.ExitCode(err))
	assert.Contains(t, h.errOut.String(), "authorization expired")
	assert.NotContains(t, h.errOut.String(), "Error during build!")
}

func TestBuildEndpointOverride(t *testing.T) {
	srv, calls := buildServer(t, buildLog)
	cfg := writeConfig(t, "http://127.0.0.1:1")
	t.Chdir(projectDir(t, map[string]string{"index.html": "<html/>"}))

	var h harness
	require.NoError(t, h.run(t, "--config", cfg, "--endpoint", srv.URL+"/", "build", "--ni"))
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, h.out.String(), "Building current folder using endpoint: "+srv.URL)
}

func TestBuildInvalidTag(t *testing.T) {
	srv, calls := buildServer(t, buildLog)
	cfg := writeConfig(t, srv.URL)
	t.Chdir(projectDir(t, map[string]string{"package.json": "{}"}))

	var h harness
	err := h.run(t, "--config", cfg, "build", "--ni", "-t", "Bad Tag")
	require.Error(t, err)
	assert.Equal(t, 2, errors.ExitCode(err))
	assert.Zero(t, calls.Load())
}

func TestMissingConfigFile(t *testing.T) {
	var h harness
	err := h.run(t, "--config", filepath.Join(t.TempDir(), "missing.yml"), "list")
	require.Error(t, err)
	assert.Equal(t, 2, errors.ExitCode(err))
}

const listResponse = `[
  {"Name": "/test", "State": {"Status": "Up 10 minutes"},
   "Config": {"Labels": {"traefik.frontend.rule": "Host:test.host", "exoframe.project": "test"}},
   "NetworkSettings": {"Networks": {"exoframe": {"Aliases": null}}}},
  {"Name": "/test2", "State": {"Status": "Up 12 minutes"},
   "Config": {"Labels": {"exoframe.project": "test"}},
   "NetworkSettings": {"Networks": {"exoframe": {"Aliases": null}}}},
  {"Name": "/test3", "State": {"Status": "Up 13 minutes"},
   "Config": {"Labels": {"exoframe.project": "other"}},
   "NetworkSettings": {"Networks": {"exoframe": {"Aliases": null}}}}
]`

func listServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/list" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListTable(t *testing.T) {
	srv := listServer(t, listResponse)
	cfg := writeConfig(t, srv.URL)

	var h harness
	require.NoError(t, h.run(t, "--config", cfg, "list"))

	out := h.out.String()
	assert.Contains(t, out, "3 deployments found on "+srv.URL+":")
	assert.Contains(t, out, "Deployments for test:")
	assert.Contains(t, out, "Other deployments:")
	assert.Less(t, strings.Index(out, "Deployments for test:"), strings.Index(out, "Other deployments:"))
	assert.Less(t, strings.Index(out, "test.host"), strings.Index(out, "Other deployments:"))
	assert.Greater(t, strings.Index(out, "test3"), strings.Index(out, "Other deployments:"))
}

func TestListAliasJSON(t *testing.T) {
	srv := listServer(t, listResponse)
	cfg := writeConfig(t, srv.URL)

	var h harness
	require.NoError(t, h.run(t, "--config", cfg, "ls", "--format", "json"))

	var got struct {
		Endpoint    string `json:"endpoint"`
		Deployments []struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"deployments"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, srv.URL, got.Endpoint)
	require.Len(t, got.Deployments, 3)
	assert.Equal(t, "test", got.Deployments[0].ID)
	assert.Equal(t, "test.host", got.Deployments[0].URL)
}

func TestListToFile(t *testing.T) {
	srv := listServer(t, listResponse)
	cfg := writeConfig(t, srv.URL)
	path := filepath.Join(t.TempDir(), "deployments.yaml")

	var h harness
	require.NoError(t, h.run(t, "--config", cfg, "list", "--format", "yaml", "-o", path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "id: test2")
	assert.Empty(t, h.out.String())
}

func TestListEmpty(t *testing.T) {
	srv := listServer(t, `[]`)
	cfg := writeConfig(t, srv.URL)

	var h harness
	require.NoError(t, h.run(t, "--config", cfg, "list"))
	assert.Equal(t, "No deployments found on "+srv.URL+"!\n", h.out.String())
}

func TestListInvalidFormat(t *testing.T) {
	var h harness
	err := h.run(t, "--config", writeConfig(t, "http://localhost:8080"), "list", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, 2, errors.ExitCode(err))
}

func TestListServerUnavailable(t *testing.T) {
	srv := listServer(t, `[]`)
	url := srv.URL
	srv.Close()

	var h harness
	err := h.run(t, "--config", writeConfig(t, url), "list")
	require.Error(t, err)
	assert.Equal(t, 6, errors.ExitCode(err))
}
