package handlers

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"portfolio/internal/config"
)

var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"video/mp4":  true,
	"video/webm": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

type uploadRequest struct {
	File     string `json:"file"`
	Filename string `json:"filename"`
	Type     string `json:"type,omitempty"`
}

// Upload handles POST /api/upload: decodes a base64 media payload and writes
// it under the uploads dir with a timestamped, sanitized filename.
func Upload(cfg *config.Config, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req uploadRequest
		if !decodeBody(ctx, &req) {
			return
		}
		if req.File == "" || req.Filename == "" {
			errResponse(ctx, fasthttp.StatusBadRequest, "file and filename are required")
			return
		}
		if req.Type != "" && !allowedUploadTypes[req.Type] {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid file type; allowed: JPEG, PNG, GIF, WebP, MP4, WebM")
			return
		}

		// Data URLs carry a "data:<type>;base64," prefix.
		raw := req.File
		if i := strings.IndexByte(raw, ','); i >= 0 {
			raw = raw[i+1:]
		}

		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "file must be base64 encoded")
			return
		}
		if int64(len(data)) > cfg.MaxUploadBytes {
			errResponse(ctx, fasthttp.StatusBadRequest, "file too large")
			return
		}

		sanitized := unsafeFilenameChars.ReplaceAllString(filepath.Base(req.Filename), "_")
		finalName := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + sanitized

		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			log.Error().Err(err).Msg("failed to create uploads dir")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to upload file")
			return
		}
		if err := os.WriteFile(filepath.Join(cfg.UploadDir, finalName), data, 0o644); err != nil {
			log.Error().Err(err).Msg("failed to write upload")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to upload file")
			return
		}

		jsonResponse(ctx, fasthttp.StatusCreated, map[string]any{
			"success":  true,
			"url":      "/uploads/" + finalName,
			"filename": finalName,
		})
	}
}

// DeleteUpload handles DELETE /api/upload?filename=: removes a previously
// uploaded file. Removing a file that is already gone succeeds.
func DeleteUpload(cfg *config.Config, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		filename := string(ctx.QueryArgs().Peek("filename"))
		if filename == "" {
			errResponse(ctx, fasthttp.StatusBadRequest, "filename is required")
			return
		}

		// Base strips any path components, confining deletion to the uploads dir.
		path := filepath.Join(cfg.UploadDir, filepath.Base(filename))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Error().Err(err).Str("filename", filename).Msg("failed to delete upload")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to delete file")
			return
		}

		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{
			"success": true,
			"message": "file deleted",
		})
	}
}
