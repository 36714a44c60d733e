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

// Package stream decodes the newline-delimited build log returned by the
// exoframe server. Each line is either a docker JSON message or plain text.
package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/exoframe/exoframe-cli/pkg/defaults"
)

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// Clean trims surrounding whitespace and removes every carriage return and newline.
func Clean(s string) string {
	return lineBreaks.Replace(strings.TrimSpace(s))
}

// Fragment is one line of the build response.
type Fragment struct {
	// Raw is the line as received, without its terminating newline.
	Raw string
	// Message is the decoded JSON message, nil for plain text lines.
	Message *jsonmessage.JSONMessage

	// stream is set when the JSON message carries a stream key, even an empty one.
	stream *string
}

type streamField struct {
	Stream *string `json:"stream"`
}

// Parse decodes a single response line.
func Parse(line string) Fragment {
	f := Fragment{Raw: line}
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return f
	}
	var msg jsonmessage.JSONMessage
	if err := json.Unmarshal([]byte(trimmed), &msg); err != nil {
		return f
	}
	f.Message = &msg
	var sf streamField
	if err := json.Unmarshal([]byte(trimmed), &sf); err == nil {
		f.stream = sf.Stream
	}
	return f
}

// Text returns the printable form of the fragment: the cleaned stream field of
// a JSON message when present, otherwise the cleaned raw line.
func (f Fragment) Text() string {
	if f.stream != nil {
		return Clean(*f.stream)
	}
	return Clean(f.Raw)
}

// Err returns the error reported by the server in this fragment, if any.
func (f Fragment) Err() error {
	if f.Message == nil {
		return nil
	}
	if f.Message.Error != nil {
		return f.Message.Error
	}
	if f.Message.ErrorMessage != "" {
		return fmt.Errorf("%s", Clean(f.Message.ErrorMessage))
	}
	return nil
}

// Fragments lazily yields the non-blank lines of r in arrival order. Iteration
// stops at EOF, at the first read error (yielded with a zero Fragment), or when
// the consumer stops ranging.
func Fragments(r io.Reader) iter.Seq2[Fragment, error] {
	return func(yield func(Fragment, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, defaults.StreamInitialBufferSize), defaults.StreamMaxLineSize)
		for sc.Scan() {
			line := sc.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			if !yield(Parse(string(line)), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Fragment{}, err)
		}
	}
}
