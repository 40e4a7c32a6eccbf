// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shayne/matrix/internal/store"
)

// maxUploadMemory is how much of a multipart upload is buffered in memory
// before spilling to temp files.
const maxUploadMemory = 32 << 20

// DetailResponse is the error shape used by the editor and upload
// endpoints.
type DetailResponse struct {
	Detail string `json:"detail"`
}

type FilesResponse struct {
	Files []string `json:"files"`
}

type ContentRequest struct {
	Content string `json:"content"`
}

type ContentResponse struct {
	Content string `json:"content"`
}

func (s *Server) detailError(c echo.Context, err error) error {
	status, msg := classify(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("edit operation failed")
	}
	return c.JSON(status, DetailResponse{Detail: msg})
}

func requireProject(c echo.Context) (string, error) {
	project := strings.TrimSpace(c.QueryParam("project"))
	if project == "" {
		return "", c.JSON(http.StatusBadRequest, DetailResponse{Detail: "project is required"})
	}
	return project, nil
}

func fileParam(c echo.Context) string {
	if f := strings.TrimSpace(c.QueryParam("file")); f != "" {
		return f
	}
	return store.IndexFile
}

func (s *Server) handleEditList(c echo.Context) error {
	project, err := requireProject(c)
	if project == "" {
		return err
	}
	files, err := s.store.Files(project)
	if err != nil {
		return s.detailError(c, err)
	}
	return c.JSON(http.StatusOK, FilesResponse{Files: files})
}

func (s *Server) handleEditRead(c echo.Context) error {
	project, err := requireProject(c)
	if project == "" {
		return err
	}
	data, err := s.store.ReadFile(project, fileParam(c))
	if err != nil {
		return s.detailError(c, err)
	}
	return c.JSON(http.StatusOK, ContentResponse{Content: string(data)})
}

func (s *Server) handleEditWrite(c echo.Context) error {
	project, err := requireProject(c)
	if project == "" {
		return err
	}
	var req ContentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid request body"})
	}
	file := fileParam(c)
	if err := s.store.WriteFile(project, file, []byte(req.Content)); err != nil {
		return s.detailError(c, err)
	}
	s.log.Debug().Str("project", project).Str("file", file).Int("bytes", len(req.Content)).Msg("file saved")
	return c.JSON(http.StatusOK, StatusResponse{Status: "saved"})
}

func (s *Server) handleUpload(c echo.Context) error {
	if err := c.Request().ParseMultipartForm(maxUploadMemory); err != nil {
		return c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid multipart form"})
	}
	form := c.Request().MultipartForm
	defer form.RemoveAll()

	name := strings.TrimSpace(c.FormValue("project_name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, DetailResponse{Detail: "project_name is required"})
	}
	overwrite, _ := strconv.ParseBool(c.FormValue("overwrite"))

	headers := form.File["files"]
	uploads := make([]store.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, store.Upload{
			Path: uploadPath(fh),
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	res, err := s.store.Import(name, c.FormValue("root_folder"), overwrite, uploads)
	if err != nil {
		return s.detailError(c, err)
	}
	s.log.Info().
		Str("project", res.Project).
		Int("saved", len(res.Saved)).
		Int("skipped", len(res.Skipped)).
		Msg("project uploaded")
	return c.JSON(http.StatusOK, res)
}

// uploadPath recovers the relative filename the browser sent. The
// multipart package reduces FileHeader.Filename to its base name, which
// would flatten folder uploads.
func uploadPath(fh *multipart.FileHeader) string {
	if _, params, err := mime.ParseMediaType(fh.Header.Get("Content-Disposition")); err == nil {
		if name := params["filename"]; name != "" {
			return name
		}
	}
	return fh.Filename
}
