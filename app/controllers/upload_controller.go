package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aranya-labs/aranya/pkg/response"
	"github.com/aranya-labs/aranya/pkg/storage"
)

const maxUploadBytes = 10 << 20 // 10 MB

var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// Store accepts a multipart "file" field and writes it to the default disk.
func (c *UploadController) Store(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		response.Error(w, http.StatusUnprocessableEntity, "unsupported file type")
		return
	}

	path := uploadPath(ext)
	if err := storage.PutStream(path, file); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not store file")
		return
	}
	response.Created(w, map[string]string{
		"path": path,
		"url":  storage.URL(path),
	})
}

type presignInput struct {
	Filename string `json:"filename" validate:"required,max=255"`
}

// Presign hands the client a short-lived direct upload URL.
func (c *UploadController) Presign(w http.ResponseWriter, r *http.Request) {
	var in presignInput
	if !bindJSON(w, r, &in) {
		return
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if !allowedUploadExts[ext] {
		response.Error(w, http.StatusUnprocessableEntity, "unsupported file type")
		return
	}

	path := uploadPath(ext)
	url, err := storage.PresignPut(path, 15*time.Minute)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "presigned uploads are not available")
		return
	}
	response.Success(w, map[string]string{
		"path":       path,
		"upload_url": url,
		"public_url": storage.URL(path),
	})
}

func uploadPath(ext string) string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return fmt.Sprintf("uploads/%s/%s%s", time.Now().Format("2006/01"), hex.EncodeToString(buf), ext)
}
