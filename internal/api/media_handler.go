package api

import (
	"net/http"

	"campusclubs/internal/service"
)

const maxUploadSize = 10 << 20 // 10 MiB

type MediaHandler struct {
	Service *service.MediaService
}

func NewMediaHandler(svc *service.MediaService) *MediaHandler {
	return &MediaHandler{Service: svc}
}

// Upload proxies a multipart file upload to Cloudinary and returns the
// hosted URL.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "file is required"})
		return
	}
	defer file.Close()

	presetType := r.FormValue("preset_type")
	if presetType == "" {
		presetType = r.FormValue("type")
	}
	formPreset := r.FormValue("upload_preset")

	url, err := h.Service.Upload(header.Filename, header.Header.Get("Content-Type"), file, presetType, formPreset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
