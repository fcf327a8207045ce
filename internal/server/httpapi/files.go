package httpapi

import (
	"net/http"
	"os/user"

	"github.com/pitwall/paddockpress/internal/server/storage"
)

// bridgeVersion identifies this implementation in the debug payload.
const bridgeVersion = "go-bridge/1"

// handleFilesGet serves the file listing (action=list) and the operational
// diagnostics (action=debug_paths).
func (s *Server) handleFilesGet(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "list":
		files, err := s.files.List(r.Context())
		if err != nil {
			s.logger.Error(r.Context(), "listing failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if files == nil {
			files = []storage.StoredFile{}
		}
		writeJSON(w, http.StatusOK, files)

	case "debug_paths":
		files, listErr := s.files.List(r.Context())
		runAs := "unknown"
		if u, err := user.Current(); err == nil {
			runAs = u.Username
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"dir_writable": listErr == nil,
			"php_user":     runAs,
			"file_count":   len(files),
			"upload_dir":   s.files.Bucket(),
			"v":            bridgeVersion,
		})

	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

// handleFilesPost serves uploads (multipart, field "file") and deletions
// (form, action=delete).
func (s *Server) handleFilesPost(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("action") == "delete" {
		name := r.PostFormValue("file")
		if name == "" {
			writeError(w, http.StatusBadRequest, "missing file name")
			return
		}
		if err := s.files.Delete(r.Context(), name); err != nil {
			s.logger.Error(r.Context(), "delete failed", "file", name, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "missing file field",
		})
		return
	}
	defer f.Close()

	contentType := r.PostFormValue("type")
	if contentType == "" {
		contentType = header.Header.Get("Content-Type")
	}

	if err := s.files.Put(r.Context(), header.Filename, contentType, f); err != nil {
		s.logger.Error(r.Context(), "upload failed", "file", header.Filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
