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

package defaults

import "time"

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the total timeout for short API calls such as listing deployments.
	// Build uploads stream until the server closes the response and have no total timeout.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Stream limits for reading the build log.
const (
	// StreamInitialBufferSize is the initial line buffer for response fragments.
	StreamInitialBufferSize = 64 * 1024

	// StreamMaxLineSize bounds a single newline-delimited fragment.
	StreamMaxLineSize = 4 * 1024 * 1024
)

// Terminal UI settings.
const (
	// SpinnerInterval is the frame interval of the busy indicator.
	SpinnerInterval = 100 * time.Millisecond

	// IndicatorStopTimeout bounds how long stopping the indicator may block.
	IndicatorStopTimeout = 2 * time.Second
)

// Project conventions shared with the server.
const (
	// DefaultEndpoint is used when no endpoint is configured.
	DefaultEndpoint = "http://localhost:8080"

	// DockerfileName is the build file written into the working directory.
	DockerfileName = "Dockerfile"

	// UserLabel carries the configured username on every build.
	UserLabel = "exoframe.user"

	// ProjectLabel groups deployments in the list output.
	ProjectLabel = "exoframe.project"

	// RouteLabel holds the traefik routing rule of a deployment.
	RouteLabel = "traefik.frontend.rule"

	// NetworkName is the docker network deployments are attached to.
	NetworkName = "exoframe"
)
