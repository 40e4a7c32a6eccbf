// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store keeps web projects as directories on disk. A project is a
// directory under the root that contains an index.html.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const IndexFile = "index.html"

var (
	ErrInvalidName = errors.New("invalid project name")
	ErrExists      = errors.New("project already exists")
	ErrNotFound    = errors.New("project not found")
	ErrInvalidPath = errors.New("invalid file path")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

const starterPage = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>%[1]s</title>
  <style>
    body { background: #000; color: #0f0; font-family: monospace; padding: 2rem; }
  </style>
</head>
<body>
  <h1>%[1]s</h1>
  <p>Edit index.html to get started.</p>
</body>
</html>
`

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

// ValidateName reports ErrInvalidName for names that are not a single safe
// path segment.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (s *Store) dir(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, name), nil
}

// List returns projects in lexical order. A missing root yields an empty
// list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	projects := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, entry.Name(), IndexFile)); err != nil {
			continue
		}
		projects = append(projects, entry.Name())
	}
	return projects, nil
}

// Exists reports whether name is a project.
func (s *Store) Exists(name string) bool {
	_, err := s.IndexPath(name)
	return err == nil
}

// IndexPath returns the project's index.html.
func (s *Store) IndexPath(name string) (string, error) {
	dir, err := s.dir(name)
	if err != nil {
		return "", err
	}
	index := filepath.Join(dir, IndexFile)
	info, err := os.Stat(index)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return index, nil
}

// Create makes a new project with a starter page.
func (s *Store) Create(name string) error {
	dir, err := s.dir(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, IndexFile), fmt.Appendf(nil, starterPage, name), 0o644)
}

// Delete removes the project directory and everything in it.
func (s *Store) Delete(name string) error {
	dir, err := s.dir(name)
	if err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return os.RemoveAll(dir)
}

// CleanRel normalises a slash-separated path relative to a project and
// rejects anything that would escape it.
func CleanRel(rel string) (string, error) {
	rel = strings.ReplaceAll(strings.TrimSpace(rel), "\\", "/")
	if rel == "" || path.IsAbs(rel) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	cleaned := path.Clean(rel)
	if cleaned == "." || !filepath.IsLocal(filepath.FromSlash(cleaned)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	return cleaned, nil
}

// Resolve returns the on-disk path of rel inside project name.
func (s *Store) Resolve(name, rel string) (string, error) {
	dir, err := s.dir(name)
	if err != nil {
		return "", err
	}
	cleaned, err := CleanRel(rel)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.FromSlash(cleaned)), nil
}

// Files lists every regular file in the project as slash-separated paths.
func (s *Store) Files(name string) ([]string, error) {
	dir, err := s.dir(name)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	files := []string{}
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Store) ReadFile(name, rel string) ([]byte, error) {
	p, err := s.Resolve(name, rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, name, rel)
		}
		return nil, err
	}
	return data, nil
}

// WriteFile replaces rel inside an existing project, creating parent
// directories as needed.
func (s *Store) WriteFile(name, rel string, data []byte) error {
	p, err := s.Resolve(name, rel)
	if err != nil {
		return err
	}
	if info, err := os.Stat(filepath.Join(s.root, name)); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// Upload is one file of an imported folder.
type Upload struct {
	// Path is the browser-relative path, usually prefixed with the
	// selected folder name.
	Path string
	Open func() (io.ReadCloser, error)
}

type ImportResult struct {
	Project  string   `json:"project"`
	Saved    []string `json:"saved_files"`
	Skipped  []string `json:"skipped_files"`
	HasIndex bool     `json:"has_index"`
}

// Import writes an uploaded folder as project name. rootFolder is stripped
// from each upload path. Unsafe paths are skipped rather than failing the
// whole import.
func (s *Store) Import(name, rootFolder string, overwrite bool, uploads []Upload) (ImportResult, error) {
	dir, err := s.dir(name)
	if err != nil {
		return ImportResult{}, err
	}
	if _, err := os.Stat(dir); err == nil {
		if !overwrite {
			return ImportResult{}, fmt.Errorf("%w: %s", ErrExists, name)
		}
		if err := os.RemoveAll(dir); err != nil {
			return ImportResult{}, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Project: name, Saved: []string{}, Skipped: []string{}}
	prefix := strings.Trim(strings.ReplaceAll(rootFolder, "\\", "/"), "/")
	for _, up := range uploads {
		rel := strings.ReplaceAll(up.Path, "\\", "/")
		if prefix != "" {
			rel = strings.TrimPrefix(rel, prefix+"/")
		}
		cleaned, err := CleanRel(rel)
		if err != nil {
			res.Skipped = append(res.Skipped, up.Path)
			continue
		}
		if err := s.saveUpload(dir, cleaned, up); err != nil {
			return res, fmt.Errorf("save %s: %w", cleaned, err)
		}
		res.Saved = append(res.Saved, cleaned)
	}
	if _, err := os.Stat(filepath.Join(dir, IndexFile)); err == nil {
		res.HasIndex = true
	}
	return res, nil
}

func (s *Store) saveUpload(dir, rel string, up Upload) error {
	src, err := up.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	dst := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
