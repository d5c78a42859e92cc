// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"gavel/internal/storage"
	"gavel/internal/store"
)

// maxUploadBytes caps listing image uploads.
const maxUploadBytes = 10 << 20

// imageExtensions maps accepted upload content types to stored extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Media serves listing image uploads backed by the S3 bucket.
type Media struct {
	storage *storage.Client
	users   *store.UserStore
}

// NewMedia builds the media handler group. storage may be nil when no
// bucket is configured; uploads then answer 501.
func NewMedia(storage *storage.Client, users *store.UserStore) *Media {
	return &Media{storage: storage, users: users}
}

// Upload handles POST /api/media. The multipart "file" part is stored
// under a fresh key and the public URL returned for use as a listing's
// image_url.
func (m *Media) Upload(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, m.users)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if m.storage == nil {
		writeError(w, http.StatusNotImplemented, "Media storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "A file upload is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := imageExtensions[contentType]
	if !ok {
		writeError(w, http.StatusBadRequest, "Only jpeg, png, webp and gif images are accepted")
		return
	}

	key := path.Join("listings", uuid.NewString()+ext)
	if err := m.storage.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("media upload failed", "key", key, "error", err)
		writeError(w, http.StatusBadGateway, "Media storage unavailable")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"url":      m.storage.FileURL(key),
		"filename": path.Base(key),
	})
}

// Delete handles DELETE /api/media/{filename}: removes an uploaded image
// that ended up unused, for example when listing creation was abandoned.
func (m *Media) Delete(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, m.users)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if m.storage == nil {
		writeError(w, http.StatusNotImplemented, "Media storage is not configured")
		return
	}

	filename := chi.URLParam(r, "filename")
	if filename == "" || filename != path.Base(filename) {
		writeError(w, http.StatusBadRequest, "A valid filename is required")
		return
	}

	key := path.Join("listings", filename)
	if err := m.storage.Delete(r.Context(), key); err != nil {
		slog.Error("media delete failed", "key", key, "error", err)
		writeError(w, http.StatusBadGateway, "Media storage unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"success": "File deleted"})
}
