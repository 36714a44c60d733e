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

package build

import (
	"maps"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"

	"github.com/exoframe/exoframe-cli/pkg/errors"
)

// ParseLabels parses comma separated key=value pairs. Entries without "=" or
// with an empty key are dropped; keys and values are trimmed. When a key is
// repeated the first occurrence wins.
func ParseLabels(input string) map[string]string {
	labels := map[string]string{}
	for _, entry := range strings.Split(input, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" {
			continue
		}
		if _, seen := labels[k]; seen {
			continue
		}
		labels[k] = v
	}
	return labels
}

// MergeLabels combines label sets; later sets override earlier ones on key collision.
func MergeLabels(sets ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, s := range sets {
		maps.Copy(out, s)
	}
	return out
}

// DefaultTag returns the image tag used when none is given: the trimmed
// base name of the working directory.
func DefaultTag(workdir string) string {
	return strings.TrimSpace(filepath.Base(workdir))
}

// ValidateTag checks that tag is a valid image reference.
func ValidateTag(tag string) error {
	if tag == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "image tag is empty")
	}
	if _, err := reference.ParseNormalizedNamed(tag); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"invalid image tag "+tag, err, map[string]any{"tag": tag})
	}
	return nil
}
