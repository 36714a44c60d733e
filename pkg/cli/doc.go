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

// Package cli implements the exoframe command-line interface.
//
// # Commands
//
// build - Build the current folder on the exoframe server:
//
//	exoframe build [--tag myapp] [--noninteractive] [--verbose]
//
// Detects the project template, asks for the image tag and custom labels
// (unless --noninteractive is set or stdin is not a terminal), uploads the
// folder as a tar archive and reports the result. --verbose prints the build
// log instead of showing a spinner.
//
// list (ls) - List deployments on the exoframe server:
//
//	exoframe list [--format table|json|yaml] [--output deployments.json]
//
// # Global Flags
//
//	--config      Config file (default: ~/.exoframe/cli.config.yml, env EXOFRAME_CONFIG)
//	--endpoint    Server URL, overrides the configured endpoint
//	--log-level   Log level: debug, info, warn, error (default: warn, env LOG_LEVEL)
//	--version     Show version information
//
// # Environment Variables
//
//	EXOFRAME_ENDPOINT       Server URL
//	EXOFRAME_TOKEN          Access token
//	EXOFRAME_USER_USERNAME  User name added as the exoframe.user label
//
// # Exit Codes
//
//	0  Success
//	1  Internal or unclassified error
//	2  Invalid arguments, tag or configuration
//	3  No template detected for the current folder
//	4  Template Dockerfile is empty
//	5  Authorization rejected by the server
//	6  Server unreachable or resource not found
//	7  Build failed on the server
//	8  Folder could not be archived
//	9  Canceled or timed out
package cli
