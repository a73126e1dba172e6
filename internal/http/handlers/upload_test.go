package handlers

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"portfolio/internal/config"
)

func testUploadConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1024,
	}
}

func TestUploadWritesFile(t *testing.T) {
	cfg := testUploadConfig(t)
	handler := Upload(cfg, zerolog.Nop())

	content := []byte("fake png bytes")
	payload, err := json.Marshal(map[string]string{
		"file":     "data:image/png;base64," + base64.StdEncoding.EncodeToString(content),
		"filename": "my photo!.png",
		"type":     "image/png",
	})
	require.NoError(t, err)

	ctx := postCtx(string(payload))
	handler(ctx)

	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	var resp struct {
		Success  bool   `json:"success"`
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.True(t, resp.Success)
	require.True(t, strings.HasPrefix(resp.URL, "/uploads/"))
	require.True(t, strings.HasSuffix(resp.Filename, "-my_photo_.png"))

	written, err := os.ReadFile(filepath.Join(cfg.UploadDir, resp.Filename))
	require.NoError(t, err)
	require.Equal(t, content, written)
}

func TestUploadRejectsUnknownType(t *testing.T) {
	handler := Upload(testUploadConfig(t), zerolog.Nop())

	payload := `{"file":"aGVsbG8=","filename":"x.exe","type":"application/octet-stream"}`
	ctx := postCtx(payload)
	handler(ctx)

	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestUploadRejectsOversize(t *testing.T) {
	cfg := testUploadConfig(t)
	handler := Upload(cfg, zerolog.Nop())

	big := base64.StdEncoding.EncodeToString(make([]byte, cfg.MaxUploadBytes+1))
	payload, err := json.Marshal(map[string]string{
		"file":     big,
		"filename": "big.png",
		"type":     "image/png",
	})
	require.NoError(t, err)

	ctx := postCtx(string(payload))
	handler(ctx)

	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestUploadRequiresFileAndFilename(t *testing.T) {
	handler := Upload(testUploadConfig(t), zerolog.Nop())

	ctx := postCtx(`{"filename":"x.png"}`)
	handler(ctx)

	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestDeleteUploadRemovesFile(t *testing.T) {
	cfg := testUploadConfig(t)
	handler := DeleteUpload(cfg, zerolog.Nop())

	path := filepath.Join(cfg.UploadDir, "stale.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodDelete)
	ctx.Request.SetRequestURI("/api/upload?filename=stale.png")
	handler(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestDeleteUploadRequiresFilename(t *testing.T) {
	handler := DeleteUpload(testUploadConfig(t), zerolog.Nop())

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodDelete)
	ctx.Request.SetRequestURI("/api/upload")
	handler(ctx)

	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestDeleteUploadStripsPathComponents(t *testing.T) {
	cfg := testUploadConfig(t)
	handler := DeleteUpload(cfg, zerolog.Nop())

	outside := filepath.Join(filepath.Dir(cfg.UploadDir), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodDelete)
	ctx.Request.SetRequestURI("/api/upload?filename=..%2Fvictim.txt")
	handler(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	_, err := os.Stat(outside)
	require.NoError(t, err, "file outside the uploads dir must survive")
}
