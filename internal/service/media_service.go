package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	httperrors "campusclubs/internal/errors"
)

// MediaService proxies uploads to Cloudinary's unsigned upload endpoint.
type MediaService struct {
	Client *http.Client
}

func NewMediaService() *MediaService {
	return &MediaService{Client: &http.Client{Timeout: 30 * time.Second}}
}

// resolvePreset picks the unsigned upload preset: an explicit preset
// type (logo/banner) wins, then a form-provided preset, then the generic
// env default.
func resolvePreset(presetType, formPreset string) string {
	switch strings.ToLower(presetType) {
	case "logo":
		if p := os.Getenv("CLOUDINARY_UPLOAD_PRESET_LOGO"); p != "" {
			return p
		}
	case "banner":
		if p := os.Getenv("CLOUDINARY_UPLOAD_PRESET_BANNER"); p != "" {
			return p
		}
	}
	if formPreset != "" {
		return formPreset
	}
	return os.Getenv("CLOUDINARY_UPLOAD_PRESET")
}

// Upload streams the file to Cloudinary and returns the secure URL.
func (s *MediaService) Upload(filename, mimeType string, file io.Reader, presetType, formPreset string) (string, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	preset := resolvePreset(presetType, formPreset)
	if cloudName == "" || preset == "" {
		return "", httperrors.NewHTTPError(http.StatusInternalServerError,
			"cloudinary config not set (CLOUDINARY_CLOUD_NAME and an upload preset are required)")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if mimeType != "" {
		header.Set("Content-Type", mimeType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("error building upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("error copying upload body: %w", err)
	}
	if err := writer.WriteField("upload_preset", preset); err != nil {
		return "", fmt.Errorf("error writing upload preset field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("error finalizing upload form: %w", err)
	}

	uploadURL := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/auto/upload", cloudName)
	req, err := http.NewRequest("POST", uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("error creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", httperrors.NewHTTPError(resp.StatusCode, fmt.Sprintf("upload failed: %s", respBody))
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("error decoding upload response: %w", err)
	}
	return result.SecureURL, nil
}
