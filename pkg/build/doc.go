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

// Package build implements the build command flow.
//
// A run resolves the project template, asks for the image tag and custom
// labels in interactive mode, writes the template Dockerfile when the project
// has none, and uploads a tar archive of the working directory to the server.
// Archive production and upload form a pipeline joined by an io.Pipe under a
// single errgroup:
//
//	archive.Builder.Write -> io.Pipe -> client.Build -> stream.Fragments
//
// The response log is printed in verbose mode; otherwise a progress indicator
// runs until the server closes the stream. Cleanup (stopping the indicator and
// deleting a synthesized Dockerfile) runs exactly once, after both sides of the
// pipeline have returned.
//
// Labels are merged in increasing precedence: template labels, answers to
// template prompts, user labels, and finally exoframe.user from the config.
package build
