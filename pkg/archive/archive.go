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

// Package archive produces a lazily streamed tar archive of a directory,
// skipping paths matched by ignore patterns.
//
// Patterns follow github.com/moby/patternmatcher semantics (`*`, `**`, `?`,
// character classes and `!` exceptions), evaluated against slash separated
// paths relative to the archive root. A pattern without a separator also
// matches the base name at any depth, so `*.log` excludes `logs/app.log`.
package archive

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"

	cerrors "github.com/exoframe/exoframe-cli/pkg/errors"
)

// Builder writes tar archives of a directory tree.
type Builder struct {
	matcher *patternmatcher.PatternMatcher
}

// NewBuilder compiles the ignore patterns.
func NewBuilder(ignores []string) (*Builder, error) {
	pm, err := patternmatcher.New(expandPatterns(ignores))
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid ignore pattern", err)
	}
	return &Builder{matcher: pm}, nil
}

// expandPatterns adds a `**/` variant for every pattern that has no separator.
func expandPatterns(ignores []string) []string {
	out := make([]string, 0, len(ignores)*2)
	for _, p := range ignores {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)

		bare := strings.TrimPrefix(p, "!")
		if !strings.Contains(bare, "/") {
			prefix := ""
			if strings.HasPrefix(p, "!") {
				prefix = "!"
			}
			out = append(out, prefix+"**/"+bare)
		}
	}
	return out
}

// Excluded reports whether the slash separated relative path is ignored.
func (b *Builder) Excluded(rel string) (bool, error) {
	return b.matcher.MatchesOrParentMatches(filepath.FromSlash(rel))
}

// Write walks dir in lexical order and writes a tar archive to w.
func (b *Builder) Write(ctx context.Context, w io.Writer, dir string) error {
	tw := tar.NewWriter(w)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return archiveError(path, dir, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return archiveError(path, dir, err)
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		skip, err := b.Excluded(rel)
		if err != nil {
			return cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "failed to match ignore patterns", err)
		}
		if skip {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		return b.addEntry(tw, path, rel, d)
	})
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func (b *Builder) addEntry(tw *tar.Writer, path, rel string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return archiveError(path, "", err)
	}

	link := ""
	if info.Mode()&os.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return archiveError(path, "", err)
		}
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return archiveError(path, "", err)
	}
	hdr.Name = rel
	if info.IsDir() {
		hdr.Name += "/"
	}
	// ownership of the local user is meaningless on the build server
	hdr.Uid, hdr.Gid = 0, 0
	hdr.Uname, hdr.Gname = "", ""

	if !info.Mode().IsRegular() {
		return tw.WriteHeader(hdr)
	}

	f, err := os.Open(path)
	if err != nil {
		return archiveError(path, "", err)
	}
	defer f.Close()

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := io.Copy(tw, f); err != nil {
		if errors.Is(err, io.ErrClosedPipe) {
			return err
		}
		return archiveError(path, "", err)
	}
	slog.Debug("archived file", "path", rel, "size", info.Size())
	return nil
}

func archiveError(path, root string, err error) error {
	if errors.Is(err, io.ErrClosedPipe) {
		return err
	}
	if root != "" {
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			path = rel
		}
	}
	return cerrors.WrapWithContext(cerrors.ErrCodeArchive,
		fmt.Sprintf("failed to archive %s", path), err,
		map[string]any{"path": path})
}
