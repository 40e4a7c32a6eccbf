// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textUpload(p, body string) Upload {
	return Upload{Path: p, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(body)), nil
	}}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"demo", "my-site", "v1.2", "A_b"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", ".", "..", "-x", ".hidden", "a/b", "a b", "../etc"} {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
}

func TestListMissingRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing"))
	projects, err := s.List()
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestCreateListDelete(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	require.NoError(t, s.Create("beta"))
	require.NoError(t, s.Create("alpha"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "noindex"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644))

	projects, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, projects)

	data, err := os.ReadFile(filepath.Join(root, "alpha", IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>alpha</title>")

	assert.ErrorIs(t, s.Create("alpha"), ErrExists)
	assert.ErrorIs(t, s.Create("../x"), ErrInvalidName)

	require.NoError(t, s.Delete("alpha"))
	assert.False(t, s.Exists("alpha"))
	assert.ErrorIs(t, s.Delete("alpha"), ErrNotFound)
}

func TestCleanRel(t *testing.T) {
	ok := map[string]string{
		"index.html":    "index.html",
		"css/site.css":  "css/site.css",
		"a/./b/../c.js": "a/c.js",
		"img\\logo.png": "img/logo.png",
	}
	for in, want := range ok {
		got, err := CleanRel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "/etc/passwd", "../secret", "a/../../b", "."} {
		_, err := CleanRel(in)
		assert.ErrorIs(t, err, ErrInvalidPath, in)
	}
}

func TestFilesReadWrite(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Create("site"))
	require.NoError(t, s.WriteFile("site", "css/site.css", []byte("body{}")))

	files, err := s.Files("site")
	require.NoError(t, err)
	assert.Equal(t, []string{"css/site.css", "index.html"}, files)

	data, err := s.ReadFile("site", "css/site.css")
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))

	_, err = s.ReadFile("site", "missing.js")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ReadFile("site", "../other/index.html")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, s.WriteFile("nope", "index.html", nil), ErrNotFound)
	_, err = s.Files("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImport(t *testing.T) {
	s := New(t.TempDir())
	uploads := []Upload{
		textUpload("My Site/index.html", "<h1>hi</h1>"),
		textUpload("My Site/js/app.js", "console.log(1)"),
		textUpload("My Site/../escape.txt", "nope"),
	}
	res, err := s.Import("mysite", "My Site", false, uploads)
	require.NoError(t, err)
	assert.Equal(t, "mysite", res.Project)
	assert.Equal(t, []string{"index.html", "js/app.js"}, res.Saved)
	assert.Equal(t, []string{"My Site/../escape.txt"}, res.Skipped)
	assert.True(t, res.HasIndex)

	projects, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"mysite"}, projects)

	_, err = s.Import("mysite", "My Site", false, uploads)
	assert.ErrorIs(t, err, ErrExists)

	res, err = s.Import("mysite", "My Site", true, []Upload{textUpload("My Site/readme.md", "x")})
	require.NoError(t, err)
	assert.False(t, res.HasIndex)
	files, err := s.Files("mysite")
	require.NoError(t, err)
	assert.Equal(t, []string{"readme.md"}, files)
}
