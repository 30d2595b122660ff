package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"drivegallery/internal/application/gallery"
	"drivegallery/internal/domain/drive"
)

// maxUploadSize bounds the multipart form kept in memory.
const maxUploadSize = 10 << 20 // 10MB

// DriveHandler exposes the plain file operations of the provider.
type DriveHandler struct {
	service gallery.Service
}

func NewDriveHandler(service gallery.Service) *DriveHandler {
	return &DriveHandler{service: service}
}

// List handles GET /api/drive/files?pageSize=&pageToken=&query=
func (h *DriveHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pageSize := int64(10)
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			SendError(w, "Invalid pageSize", http.StatusBadRequest)
			return
		}
		pageSize = parsed
	}

	list, err := h.service.ListFiles(r.Context(), pageSize,
		r.URL.Query().Get("pageToken"), r.URL.Query().Get("query"))
	if err != nil {
		SendDomainError(w, err)
		return
	}

	SendJSON(w, http.StatusOK, list)
}

// FileByID handles GET, PUT and DELETE on /api/drive/files/{fileId}
func (h *DriveHandler) FileByID(w http.ResponseWriter, r *http.Request) {
	fileID := strings.TrimPrefix(r.URL.Path, "/api/drive/files/")
	if fileID == "" || strings.Contains(fileID, "/") {
		SendError(w, "File ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getFile(w, r, fileID)
	case http.MethodPut:
		h.updateFile(w, r, fileID)
	case http.MethodDelete:
		h.deleteFile(w, r, fileID)
	default:
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DriveHandler) getFile(w http.ResponseWriter, r *http.Request, fileID string) {
	if r.URL.Query().Get("download") == "true" {
		content, err := h.service.DownloadFile(r.Context(), fileID)
		if err != nil {
			SendDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", content.MimeType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", content.Name))
		w.Write(content.Data)
		return
	}

	record, err := h.service.GetFile(r.Context(), fileID)
	if err != nil {
		SendDomainError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, record)
}

// Upload handles POST /api/drive/upload (multipart: file + name,
// description, folderId)
func (h *DriveHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		SendError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		SendError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		SendError(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	record, err := h.service.UploadFile(r.Context(), &drive.UploadRequest{
		Name:        name,
		MimeType:    mimeType,
		Data:        data,
		Description: r.FormValue("description"),
		FolderID:    r.FormValue("folderId"),
	})
	if err != nil {
		SendDomainError(w, err)
		return
	}

	SendJSON(w, http.StatusOK, map[string]any{
		"message": "File uploaded successfully",
		"file":    record,
	})
}

func (h *DriveHandler) updateFile(w http.ResponseWriter, r *http.Request, fileID string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		SendError(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	req := &drive.UpdateRequest{}
	if vals, ok := r.MultipartForm.Value["name"]; ok && len(vals) > 0 {
		req.Name = &vals[0]
	}
	if vals, ok := r.MultipartForm.Value["description"]; ok && len(vals) > 0 {
		req.Description = &vals[0]
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			SendError(w, "Failed to read file", http.StatusBadRequest)
			return
		}
		req.Data = data
		req.MimeType = header.Header.Get("Content-Type")
	}

	record, err := h.service.UpdateFile(r.Context(), fileID, req)
	if err != nil {
		SendDomainError(w, err)
		return
	}

	SendJSON(w, http.StatusOK, map[string]any{
		"message": "File updated successfully",
		"file":    record,
	})
}

func (h *DriveHandler) deleteFile(w http.ResponseWriter, r *http.Request, fileID string) {
	if err := h.service.DeleteFile(r.Context(), fileID); err != nil {
		SendDomainError(w, err)
		return
	}

	SendJSON(w, http.StatusOK, map[string]any{
		"message": "File deleted successfully",
	})
}
