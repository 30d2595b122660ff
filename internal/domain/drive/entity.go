package drive

// FolderMimeType is the MIME type Google Drive uses for folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// DescriptionFileName is the per-folder description file. The name is
// misspelled on purpose: existing folders already carry files under
// this exact name.
const DescriptionFileName = "Discription.txt"

// FileRecord mirrors the remote file metadata we expose to clients.
// Timestamps are kept as the RFC 3339 strings the provider returns.
type FileRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	Size           int64  `json:"size,omitempty"`
	CreatedTime    string `json:"createdTime,omitempty"`
	ModifiedTime   string `json:"modifiedTime,omitempty"`
	WebViewLink    string `json:"webViewLink,omitempty"`
	WebContentLink string `json:"webContentLink,omitempty"`
	ThumbnailLink  string `json:"thumbnailLink,omitempty"`
}

// FileList is one page of a listing.
type FileList struct {
	Files         []*FileRecord `json:"files"`
	NextPageToken string        `json:"nextPageToken,omitempty"`
}

// FileContent is a downloaded file: metadata plus raw bytes.
type FileContent struct {
	Name     string
	MimeType string
	Data     []byte
}

// FolderRecord is the read shape for a folder.
type FolderRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedTime  string `json:"createdTime,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
}

// PreviewImage is the subset of an image file used as a folder preview.
type PreviewImage struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	ThumbnailLink  string `json:"thumbnailLink,omitempty"`
	WebContentLink string `json:"webContentLink,omitempty"`
}

// FolderSummary joins a folder with its preview image and description.
// Image and Description are null in JSON when absent, never omitted.
type FolderSummary struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	CreatedTime  string        `json:"createdTime,omitempty"`
	ModifiedTime string        `json:"modifiedTime,omitempty"`
	Description  *string       `json:"description"`
	Image        *PreviewImage `json:"image"`
}

// PermissionResult is the outcome of a write-access probe.
type PermissionResult struct {
	CanCreate bool   `json:"canCreate"`
	Message   string `json:"message,omitempty"`
}

// ImageData is an image payload encoded for inline display.
type ImageData struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}

// UploadRequest describes a file to create remotely.
type UploadRequest struct {
	Name        string
	MimeType    string
	Data        []byte
	Description string
	FolderID    string
}

// UpdateRequest describes a partial update. Nil pointer fields are not
// sent, so the remote value is left untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	MimeType    string
	Data        []byte
}

// FolderResult reports an idempotent folder creation.
type FolderResult struct {
	Folder  *FolderRecord `json:"folder"`
	Created bool          `json:"created"`
	Message string        `json:"message"`
}

// FileResult reports an idempotent file upsert.
type FileResult struct {
	File    *FileRecord `json:"file"`
	Created bool        `json:"created"`
	Message string      `json:"message"`
}
