package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"drivegallery/internal/application/gallery"
	"drivegallery/internal/domain/drive"
)

// GalleryHandler exposes the 3D folder aggregation, description and
// permission-probe endpoints.
type GalleryHandler struct {
	service gallery.Service
}

func NewGalleryHandler(service gallery.Service) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// Folders handles GET /api/drive/3d-folders
func (h *GalleryHandler) Folders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	folders, err := h.service.FoldersWithPreviews(r.Context())
	if err != nil {
		SendDomainError(w, err)
		return
	}

	SendJSON(w, http.StatusOK, map[string]any{"folders": folders})
}

// Image handles GET /api/drive/image/{fileId}
func (h *GalleryHandler) Image(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fileID := strings.TrimPrefix(r.URL.Path, "/api/drive/image/")
	if fileID == "" || strings.Contains(fileID, "/") {
		SendError(w, "File ID is required", http.StatusBadRequest)
		return
	}

	image, err := h.service.ImageAsBase64(r.Context(), fileID)
	if err != nil {
		SendDomainError(w, err)
		return
	}

	SendJSON(w, http.StatusOK, image)
}

// CreateUploadsFolder handles POST /api/drive/create-uploads-folder
func (h *GalleryHandler) CreateUploadsFolder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		FolderID   string `json:"folderId"`
		FolderName string `json:"folderName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FolderID == "" || req.FolderName == "" {
		SendError(w, "Folder ID and name are required", http.StatusBadRequest)
		return
	}

	result, err := h.service.CreateUploadsFolder(r.Context(), req.FolderID, req.FolderName)
	if err != nil {
		SendDomainError(w, err)
		return
	}

	SendJSON(w, http.StatusOK, result)
}

// SaveDescription handles POST /api/drive/save-description
func (h *GalleryHandler) SaveDescription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		FolderID    string  `json:"folderId"`
		FolderName  string  `json:"folderName"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FolderID == "" || req.FolderName == "" {
		SendError(w, "Folder ID and name are required", http.StatusBadRequest)
		return
	}
	// Empty descriptions are valid content; only a missing field is
	// rejected.
	if req.Description == nil {
		SendError(w, "Description content is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.SaveTextFile(r.Context(), drive.DescriptionFileName, *req.Description, req.FolderID)
	if err != nil {
		SendDomainError(w, err)
		return
	}

	SendJSON(w, http.StatusOK, result)
}

// TestPermissions handles POST /api/drive/test-permissions
func (h *GalleryHandler) TestPermissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		FolderID string `json:"folderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FolderID == "" {
		SendError(w, "Folder ID is required", http.StatusBadRequest)
		return
	}

	// The probe reports failures as data, never as an error response.
	SendJSON(w, http.StatusOK, h.service.TestFolderPermissions(r.Context(), req.FolderID))
}
