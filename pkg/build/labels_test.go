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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exoframe/exoframe-cli/pkg/errors"
)

func TestParseLabels(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"mixed", "a=1, b=2, invalid, c=3", map[string]string{"a": "1", "b": "2", "c": "3"}},
		{"empty", "", map[string]string{}},
		{"first occurrence wins", "a=1,a=2", map[string]string{"a": "1"}},
		{"trimmed key and value", " key =  value ", map[string]string{"key": "value"}},
		{"empty key dropped", "=x, y=", map[string]string{"y": ""}},
		{"value keeps later separators", "url=a=b", map[string]string{"url": "a=b"}},
		{"only commas", ",,,", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLabels(tt.input))
		})
	}
}

func TestMergeLabels(t *testing.T) {
	got := MergeLabels(
		map[string]string{"exoframe.type": "node", "a": "template"},
		nil,
		map[string]string{"a": "user", "exoframe.user": "spoofed"},
		map[string]string{"exoframe.user": "admin"},
	)
	assert.Equal(t, map[string]string{
		"exoframe.type": "node",
		"a":             "user",
		"exoframe.user": "admin",
	}, got)
}

func TestDefaultTag(t *testing.T) {
	assert.Equal(t, "myapp", DefaultTag("/home/user/myapp"))
	assert.Equal(t, "myapp", DefaultTag("/home/user/myapp/"))
}

func TestValidateTag(t *testing.T) {
	tests := []struct {
		tag   string
		valid bool
	}{
		{"myapp", true},
		{"myapp:1.0", true},
		{"registry.example.com/team/myapp:latest", true},
		{"", false},
		{"MyApp", false},
		{"my app", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			err := ValidateTag(tt.tag)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}
}
