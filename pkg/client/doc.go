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

// Package client implements the HTTP API of the exoframe server used by the CLI.
//
// Every request carries the access token in the x-access-token header, the CLI
// user agent and a fresh X-Request-ID. Build uploads stream a tar archive as
// the request body and return the server's newline-delimited build log without
// buffering it:
//
//	c := client.New(cfg.Endpoint, cfg.Token, client.WithUserAgent("exoframe-cli/1.0.0"))
//	body, err := c.Build(ctx, archive, client.BuildParams{Tag: "myapp"})
//	if err != nil {
//	    return err
//	}
//	defer body.Close()
//
// Non-2xx responses are mapped to pkg/errors codes: 401 and 403 become
// UNAUTHORIZED, 400 INVALID_REQUEST, 404 NOT_FOUND, 502/503/504
// SERVICE_UNAVAILABLE and anything else INTERNAL. An "error" or "message"
// field in a JSON error body is used as the message. Transport failures map to
// SERVICE_UNAVAILABLE and canceled or expired contexts to TIMEOUT.
package client
